package constants

const (
	// Environment constants
	EnvDevelopment = "development"
	EnvTest        = "test"
	EnvProduction  = "production"

	// Default pagination
	DefaultPage     = 1
	DefaultPageSize = 20
	MaxPageSize     = 100

	// HTTP Headers
	HeaderAuthorization = "Authorization"
	HeaderXRequestID    = "X-Request-ID"

	// Context keys
	ContextKeyUserID    = "user_id"
	ContextKeyUserRole  = "user_role"
	ContextKeyRequestID = "request_id"

	// SystemActor is recorded in the audit log for changes made outside an authenticated request
	SystemActor = "system"

	// Database table names
	TableProjects            = "projects"
	TableHouseholds          = "households"
	TableBeneficiaries       = "beneficiaries"
	TableAssistanceTypes     = "assistance_types"
	TableEntitlements        = "entitlements"
	TableDistributions       = "distributions"
	TableDistributionRecords = "distribution_records"
	TableAuditLogs           = "audit_logs"

	// Error messages
	ErrMsgInternalServerError = "Internal server error occurred"
)
