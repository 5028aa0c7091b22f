package ports

import (
	"context"

	domainauth "github.com/megabox/megabox-web/internal/domain/auth"
	"github.com/megabox/megabox-web/internal/domain/model"
)

// AccountAPI covers the signed-in user's own account.
type AccountAPI interface {
	UserInfo(ctx context.Context, token string) (domainauth.Identity, error)
	Profile(ctx context.Context, token string) (model.Profile, error)
	UpdateProfile(ctx context.Context, token string, p model.Profile) error
	ChangePassword(ctx context.Context, token string, req model.PasswordChange) error
	Referrals(ctx context.Context, token string) (model.ReferralSummary, error)
	Plans(ctx context.Context, token string) ([]model.Plan, error)
}

// FilesAPI covers file storage operations.
type FilesAPI interface {
	ListFiles(ctx context.Context, token string, opts model.FileListOptions) (model.FileList, error)
	UploadFile(ctx context.Context, token string, in model.UploadInput) (model.File, error)
	DeleteFile(ctx context.Context, token, id string) error
	PublicFile(ctx context.Context, id string) (model.PublicFile, error)
	RecordView(ctx context.Context, id string) error
}

// EarningsAPI covers promoter revenue.
type EarningsAPI interface {
	Earnings(ctx context.Context, token string) (model.Earnings, error)
	Analytics(ctx context.Context, token string, period model.AnalyticsPeriod) (model.Analytics, error)
	Withdrawals(ctx context.Context, token string) ([]model.Withdrawal, error)
	RequestWithdrawal(ctx context.Context, token string, req model.WithdrawalRequest, idempotencyKey string) (model.Withdrawal, error)
}

// NotificationsAPI covers the notification feed.
type NotificationsAPI interface {
	Notifications(ctx context.Context, token string) (model.Notifications, error)
	MarkNotificationRead(ctx context.Context, token, id string) error
	MarkAllNotificationsRead(ctx context.Context, token string) error
}

// AdminAPI covers owner-only administration.
type AdminAPI interface {
	AdminUsers(ctx context.Context, token string) ([]model.AdminUser, error)
	AdminWithdrawals(ctx context.Context, token string, status model.WithdrawalStatus) ([]model.Withdrawal, error)
	DecideWithdrawal(ctx context.Context, token, id string, approve bool, note string) error
	PlatformStats(ctx context.Context, token string) (model.PlatformStats, error)
}

// BackendAPI is the full REST backend.
type BackendAPI interface {
	AuthAPI
	AccountAPI
	FilesAPI
	EarningsAPI
	NotificationsAPI
	AdminAPI
}
