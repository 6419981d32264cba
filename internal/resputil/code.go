package resputil

type ErrorCode int

const (
	OK ErrorCode = 0

	// General
	InvalidRequest ErrorCode = 40001

	// Token
	TokenExpired ErrorCode = 40101
	TokenInvalid ErrorCode = 40102

	// Login
	InvalidCredentials ErrorCode = 40106

	// User is not allowed to access the resource
	UserNotAllowed ErrorCode = 40301

	// Entity lookups
	NotFound ErrorCode = 40401

	// Dependency validation
	DuplicateEdge         ErrorCode = 40901
	CycleDetected         ErrorCode = 40902
	CrossTenantReference  ErrorCode = 40903
	CrossProjectReference ErrorCode = 40904
	NegativeLag           ErrorCode = 40905
	InvalidAssignee       ErrorCode = 40906

	// Indicates laziness of the developer
	// Frontend will directly print the message without any translation
	NotSpecified ErrorCode = 99999
)
