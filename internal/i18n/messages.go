package i18n

// message is one UI string. Formats use fmt verbs; an empty ar falls back to English.
type message struct {
	key, en, ar string
}

//nolint:gochecknoglobals // static catalog source
var messages = []message{
	// Page titles.
	{"page.login", "Sign in", "تسجيل الدخول"},
	{"page.signup", "Create account", "إنشاء حساب"},
	{"page.confirm", "Confirm your email", "تأكيد البريد الإلكتروني"},
	{"page.forgot_password", "Forgot password", "نسيت كلمة المرور"},
	{"page.reset_password", "Reset password", "إعادة تعيين كلمة المرور"},
	{"page.signing_in", "Signing you in", "جارٍ تسجيل الدخول"},
	{"page.about", "About MegaBox", "عن ميجابوكس"},
	{"page.terms", "Terms of service", "شروط الخدمة"},
	{"page.privacy", "Privacy policy", "سياسة الخصوصية"},
	{"page.public_file", "Shared file", "ملف مشترك"},
	{"page.not_found", "Page not found", "الصفحة غير موجودة"},
	{"page.forbidden", "Access denied", "تم رفض الوصول"},
	{"page.files", "My files", "ملفاتي"},
	{"page.referrals", "Referrals", "الإحالات"},
	{"page.profile", "Profile", "الملف الشخصي"},
	{"page.notifications", "Notifications", "الإشعارات"},
	{"page.plans", "Plans", "الباقات"},
	{"page.dashboard", "Dashboard", "لوحة التحكم"},
	{"page.earnings", "Earnings", "الأرباح"},
	{"page.analytics", "Analytics", "الإحصائيات"},
	{"page.withdraw", "Withdraw", "سحب الأرباح"},
	{"page.users", "Users", "المستخدمون"},
	{"page.withdrawals", "Withdrawals", "طلبات السحب"},
	{"page.platform_analytics", "Platform analytics", "إحصائيات المنصة"},

	// Navigation.
	{"nav.main", "Main navigation", "التنقل الرئيسي"},
	{"nav.files", "Files", "الملفات"},
	{"nav.referrals", "Referrals", "الإحالات"},
	{"nav.notifications", "Notifications", "الإشعارات"},
	{"nav.plans", "Plans", "الباقات"},
	{"nav.profile", "Profile", "الملف الشخصي"},
	{"nav.dashboard", "Dashboard", "لوحة التحكم"},
	{"nav.earnings", "Earnings", "الأرباح"},
	{"nav.analytics", "Analytics", "الإحصائيات"},
	{"nav.withdraw", "Withdraw", "سحب"},
	{"nav.users", "Users", "المستخدمون"},
	{"nav.withdrawals", "Withdrawals", "طلبات السحب"},
	{"nav.logout", "Sign out", "تسجيل الخروج"},
	{"nav.about", "About", "من نحن"},
	{"nav.signup", "Sign up", "إنشاء حساب"},
	{"nav.terms", "Terms", "الشروط"},
	{"nav.privacy", "Privacy", "الخصوصية"},

	// Roles.
	{"role.User", "User", "مستخدم"},
	{"role.Promoter", "Promoter", "مروّج"},
	{"role.Owner", "Owner", "المالك"},

	// Errors.
	{"error.title", "Something went wrong", "حدث خطأ ما"},
	{"error.back", "Go back", "العودة"},
	{"error.csrf", "Your session form expired. Reload the page and try again.", "انتهت صلاحية النموذج. أعد تحميل الصفحة وحاول مرة أخرى."},
	{"error.rate_limited", "Too many attempts. Please wait a minute and try again.", "محاولات كثيرة. انتظر دقيقة ثم حاول مرة أخرى."},
	{"form.fix_below", "Please fix the errors below.", "يرجى تصحيح الأخطاء أدناه."},
	{"not_found.body", "The page you are looking for does not exist or was moved.", "الصفحة التي تبحث عنها غير موجودة أو تم نقلها."},
	{"forbidden.body", "Your account does not have access to this page.", "ليس لحسابك صلاحية الوصول إلى هذه الصفحة."},

	// Form fields.
	{"field.email", "Email", "البريد الإلكتروني"},
	{"field.password", "Password", "كلمة المرور"},
	{"field.username", "Username", "اسم المستخدم"},
	{"field.confirm_password", "Confirm password", "تأكيد كلمة المرور"},
	{"field.current_password", "Current password", "كلمة المرور الحالية"},
	{"field.new_password", "New password", "كلمة المرور الجديدة"},
	{"field.referral_code", "Referral code (optional)", "رمز الإحالة (اختياري)"},
	{"field.code", "Verification code", "رمز التحقق"},
	{"field.paypalEmail", "PayPal email", "بريد باي بال"},
	{"field.bankName", "Bank name", "اسم البنك"},
	{"field.accountHolder", "Account holder", "اسم صاحب الحساب"},
	{"field.accountNumber", "Account number / IBAN", "رقم الحساب / الآيبان"},
	{"field.walletNumber", "Wallet number", "رقم المحفظة"},
	{"field.instapayAddress", "InstaPay address", "عنوان إنستاباي"},

	// Auth flow.
	{"login.heading", "Welcome back", "مرحبًا بعودتك"},
	{"login.submit", "Sign in", "دخول"},
	{"login.or", "or", "أو"},
	{"login.oauth", "Continue with Google", "المتابعة باستخدام جوجل"},
	{"login.forgot", "Forgot password?", "نسيت كلمة المرور؟"},
	{"login.no_account", "Create an account", "إنشاء حساب جديد"},
	{"signup.heading", "Create your account", "أنشئ حسابك"},
	{"signup.submit", "Sign up", "تسجيل"},
	{"signup.have_account", "Already have an account? Sign in", "لديك حساب بالفعل؟ سجّل الدخول"},
	{"confirm.heading", "Check your inbox", "تحقق من بريدك"},
	{"confirm.intro", "Enter the code we sent to your email address.", "أدخل الرمز الذي أرسلناه إلى بريدك الإلكتروني."},
	{"confirm.submit", "Confirm", "تأكيد"},
	{"forgot.heading", "Reset your password", "إعادة تعيين كلمة المرور"},
	{"forgot.intro", "We will email you a code to choose a new password.", "سنرسل إليك رمزًا لاختيار كلمة مرور جديدة."},
	{"forgot.submit", "Send code", "إرسال الرمز"},
	{"reset.heading", "Choose a new password", "اختر كلمة مرور جديدة"},
	{"reset.submit", "Reset password", "تعيين كلمة المرور"},
	{"auth.notice.confirmed", "Your email is confirmed. You can sign in now.", "تم تأكيد بريدك. يمكنك تسجيل الدخول الآن."},
	{"auth.notice.password_reset", "Your password was changed. Sign in with the new one.", "تم تغيير كلمة المرور. سجّل الدخول بالكلمة الجديدة."},
	{"auth.notice.signed_out", "You have been signed out.", "تم تسجيل خروجك."},
	{"auth.notice.expired", "Your session expired. Please sign in again.", "انتهت جلستك. يرجى تسجيل الدخول مرة أخرى."},
	{"auth.toast.code_sent", "We sent you a code.", "أرسلنا إليك رمزًا."},
	{"auth.error.oauth_unavailable", "Sign-in with the provider is unavailable right now.", "تسجيل الدخول عبر المزوّد غير متاح حاليًا."},
	{"oauth.wait", "Please wait while we finish signing you in.", "يرجى الانتظار حتى نكمل تسجيل دخولك."},
	{"oauth.noscript", "JavaScript is required to finish signing in.", "يلزم تفعيل جافاسكربت لإكمال تسجيل الدخول."},
	{"oauth.failed", "We could not complete the sign-in.", "تعذر إكمال تسجيل الدخول."},

	// Static pages.
	{"about.heading", "Share files. Earn from every view.", "شارك الملفات واربح من كل مشاهدة."},
	{"about.body", "MegaBox stores your files and gives each one a link you can share anywhere.", "يخزّن ميجابوكس ملفاتك ويمنح كل ملف رابطًا يمكنك مشاركته في أي مكان."},
	{"about.promoters_heading", "For promoters", "للمروّجين"},
	{"about.promoters_body", "Promoters earn for the traffic their files bring and withdraw through PayPal, bank transfer, Vodafone Cash or InstaPay.", "يربح المروّجون من الزيارات التي تجلبها ملفاتهم ويسحبون أرباحهم عبر باي بال أو التحويل البنكي أو فودافون كاش أو إنستاباي."},
	{"terms.body", "By using MegaBox you agree not to upload content you do not have the right to share.", "باستخدامك ميجابوكس توافق على عدم رفع محتوى لا تملك حق مشاركته."},
	{"privacy.body", "We keep only what is needed to run your account. Your session lives in a single secure cookie.", "نحتفظ فقط بما يلزم لتشغيل حسابك. تُحفظ جلستك في ملف تعريف ارتباط آمن واحد."},

	// Files.
	{"files.usage", "%s of %s used", "تم استخدام %s من %s"},
	{"files.choose", "Choose a file", "اختر ملفًا"},
	{"files.limit", "Maximum size %s.", "الحد الأقصى للحجم %s."},
	{"files.upload", "Upload", "رفع"},
	{"files.col.name", "Name", "الاسم"},
	{"files.col.size", "Size", "الحجم"},
	{"files.col.views", "Views", "المشاهدات"},
	{"files.col.downloads", "Downloads", "التنزيلات"},
	{"files.col.uploaded", "Uploaded", "تاريخ الرفع"},
	{"files.col.actions", "Actions", "إجراءات"},
	{"files.copy_link", "Copy link", "نسخ الرابط"},
	{"files.delete", "Delete", "حذف"},
	{"files.confirm_delete", "Delete %s?", "حذف %s؟"},
	{"files.empty", "You have not uploaded any files yet.", "لم ترفع أي ملفات بعد."},
	{"files.shared_by", "Shared by %s", "شاركه %s"},
	{"files.download", "Download", "تنزيل"},
	{"files.public_cta", "Want to share your own files?", "هل تريد مشاركة ملفاتك؟"},
	{"files.toast.uploaded", "File uploaded.", "تم رفع الملف."},
	{"files.toast.deleted", "File deleted.", "تم حذف الملف."},

	// Account.
	{"profile.account", "Account", "الحساب"},
	{"profile.member_since", "Member since", "عضو منذ"},
	{"profile.save", "Save", "حفظ"},
	{"profile.password", "Password", "كلمة المرور"},
	{"profile.change_password", "Change password", "تغيير كلمة المرور"},
	{"profile.toast.updated", "Profile updated.", "تم تحديث الملف الشخصي."},
	{"profile.toast.password_changed", "Password changed.", "تم تغيير كلمة المرور."},
	{"referrals.code", "Your code", "رمزك"},
	{"referrals.total_earnings", "Referral earnings", "أرباح الإحالات"},
	{"referrals.count", "People referred", "عدد المحالين"},
	{"referrals.link", "Your referral link", "رابط الإحالة الخاص بك"},
	{"referrals.joined", "Joined", "تاريخ الانضمام"},
	{"referrals.earned", "Earned", "الأرباح"},
	{"referrals.status", "Status", "الحالة"},
	{"referrals.active", "Active", "نشط"},
	{"referrals.inactive", "Inactive", "غير نشط"},
	{"referrals.empty", "No one has joined with your link yet.", "لم ينضم أحد عبر رابطك بعد."},
	{"plans.required", "This page needs an active plan. Choose one below to continue.", "تتطلب هذه الصفحة باقة مفعّلة. اختر باقة أدناه للمتابعة."},
	{"plans.duration", "%d days", "%d يومًا"},
	{"plans.active", "Active", "مفعّلة"},
	{"plans.subscribe", "Subscribe", "اشترك"},
	{"plans.empty", "No plans are available right now.", "لا توجد باقات متاحة حاليًا."},

	// Notifications.
	{"notifications.unread", "%d unread", "%d غير مقروءة"},
	{"notifications.mark_all", "Mark all as read", "تعليم الكل كمقروء"},
	{"notifications.mark_read", "Mark as read", "تعليم كمقروء"},
	{"notifications.empty", "You are all caught up.", "لا توجد إشعارات جديدة."},
	{"notifications.toast.all_read", "All notifications marked as read.", "تم تعليم كل الإشعارات كمقروءة."},

	// Promoter.
	{"earnings.heading", "Balance", "الرصيد"},
	{"earnings.available", "Available", "المتاح"},
	{"earnings.pending", "Pending", "قيد الانتظار"},
	{"earnings.total", "Total earned", "إجمالي الأرباح"},
	{"earnings.col.date", "Date", "التاريخ"},
	{"earnings.col.source", "Source", "المصدر"},
	{"earnings.col.amount", "Amount", "المبلغ"},
	{"earnings.empty", "No earnings yet.", "لا توجد أرباح بعد."},
	{"analytics.heading", "Traffic", "الزيارات"},
	{"analytics.period", "Period", "الفترة"},
	{"analytics.views", "Views", "المشاهدات"},
	{"analytics.downloads", "Downloads", "التنزيلات"},
	{"analytics.revenue", "Revenue", "الإيرادات"},
	{"analytics.chart", "Daily views", "المشاهدات اليومية"},
	{"analytics.top_files", "Top files", "الملفات الأكثر مشاهدة"},
	{"analytics.empty", "No traffic in this period.", "لا توجد زيارات في هذه الفترة."},
	{"period.7d", "7 days", "7 أيام"},
	{"period.30d", "30 days", "30 يومًا"},
	{"period.365d", "12 months", "12 شهرًا"},
	{"withdraw.amount", "Amount", "المبلغ"},
	{"withdraw.method", "Payment method", "طريقة الدفع"},
	{"withdraw.choose_method", "Choose a method", "اختر طريقة"},
	{"withdraw.contact", "Contact number", "رقم التواصل"},
	{"withdraw.submit", "Request withdrawal", "طلب سحب"},
	{"withdraw.history", "Withdrawal history", "سجل السحب"},
	{"withdraw.empty", "No withdrawals yet.", "لا توجد طلبات سحب بعد."},
	{"withdraw.col.requested", "Requested", "تاريخ الطلب"},
	{"withdraw.col.promoter", "Promoter", "المروّج"},
	{"withdraw.col.status", "Status", "الحالة"},
	{"withdraw.col.note", "Note", "ملاحظة"},
	{"withdraw.toast.submitted", "Withdrawal requested.", "تم إرسال طلب السحب."},
	{"method.paypal", "PayPal", "باي بال"},
	{"method.bank", "Bank transfer", "تحويل بنكي"},
	{"method.vodafone_cash", "Vodafone Cash", "فودافون كاش"},
	{"method.instapay", "InstaPay", "إنستاباي"},
	{"status.pending", "Pending", "قيد المراجعة"},
	{"status.approved", "Approved", "مقبول"},
	{"status.rejected", "Rejected", "مرفوض"},

	// Owner.
	{"owner.total_users", "Users", "المستخدمون"},
	{"owner.total_promoters", "Promoters", "المروّجون"},
	{"owner.total_files", "Files", "الملفات"},
	{"owner.storage", "Storage", "التخزين"},
	{"owner.revenue", "Revenue", "الإيرادات"},
	{"owner.pending_withdrawals", "Pending withdrawals", "طلبات سحب معلقة"},
	{"owner.pending_count", "%d withdrawals waiting for review", "%d طلبات سحب بانتظار المراجعة"},
	{"owner.pending_heading", "Waiting for review", "بانتظار المراجعة"},
	{"owner.col.role", "Role", "الدور"},
	{"owner.col.verified", "Verified", "موثّق"},
	{"owner.col.joined", "Joined", "تاريخ الانضمام"},
	{"owner.yes", "Yes", "نعم"},
	{"owner.no", "No", "لا"},
	{"owner.users_empty", "No users yet.", "لا يوجد مستخدمون بعد."},
	{"withdrawals.approve", "Approve", "قبول"},
	{"withdrawals.reject", "Reject", "رفض"},
	{"withdrawals.note_optional", "Note (optional)", "ملاحظة (اختياري)"},
	{"withdrawals.note_required", "Reason", "السبب"},
	{"withdrawals.empty", "Nothing here.", "لا يوجد شيء هنا."},
	{"withdrawals.toast.approved", "Withdrawal approved.", "تم قبول طلب السحب."},
	{"withdrawals.toast.rejected", "Withdrawal rejected.", "تم رفض طلب السحب."},

	// Pagination.
	{"pagination.label", "Pagination", "ترقيم الصفحات"},
	{"pagination.summary", "%d–%d of %d", "%d–%d من %d"},
	{"pagination.prev", "Previous", "السابق"},
	{"pagination.next", "Next", "التالي"},

	// Relative time.
	{"time.just_now", "just now", "الآن"},
	{"time.minutes_ago", "%d min ago", "منذ %d دقيقة"},
	{"time.hours_ago", "%d h ago", "منذ %d ساعة"},
	{"time.days_ago", "%d days ago", "منذ %d يوم"},
}
