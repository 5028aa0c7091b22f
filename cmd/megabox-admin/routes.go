package main

import (
	"flag"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/megabox/megabox-web/internal/domain/route"
	httpx "github.com/megabox/megabox-web/internal/http"
)

type routesOptions struct {
	Prefix    string
	GuardOnly bool
}

func parseRoutesOptions(args []string) (routesOptions, error) {
	fs := flag.NewFlagSet("routes", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	var opts routesOptions
	fs.StringVar(&opts.Prefix, "prefix", "", "Only show patterns starting with this path")
	fs.BoolVar(&opts.GuardOnly, "guarded", false, "Only show routes that need a session")

	if err := fs.Parse(args); err != nil {
		return routesOptions{}, err
	}
	return opts, nil
}

func runRoutes(ctx *commandContext, args []string) error {
	opts, err := parseRoutesOptions(args)
	if err != nil {
		return err
	}

	tw := tabwriter.NewWriter(ctx.Out, 0, 4, 2, ' ', 0)
	if err := writeln(tw, "METHOD\tPATTERN\tLOGIN\tROLE\tPLAN"); err != nil {
		return fmt.Errorf("write routes header row: %w", err)
	}
	for _, ri := range httpx.Routes() {
		if opts.Prefix != "" && !strings.HasPrefix(ri.Pattern, opts.Prefix) {
			continue
		}
		if opts.GuardOnly && ri.Permission == route.Public {
			continue
		}
		if err := writef(tw, "%s\t%s\t%s\t%s\t%s\n",
			ri.Method,
			ri.Pattern,
			yesNo(ri.Permission.RequiredLogin),
			roleLabel(ri.Permission),
			yesNo(ri.Permission.RequiredPlan),
		); err != nil {
			return fmt.Errorf("write route row: %w", err)
		}
	}
	return tw.Flush()
}

func roleLabel(p route.Permission) string {
	if p.RequiredRole == "" {
		return "-"
	}
	return string(p.RequiredRole)
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "-"
}
