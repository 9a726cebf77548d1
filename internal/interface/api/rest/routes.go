package rest

const (
	// api
	RouteApiV1 = "/api/v1"

	// users
	RouteUsers                 = RouteApiV1 + "/users"
	RouteUser                  = RouteUsers + "/:user_id"
	RouteUserVerification      = RouteUser + "/verification"
	RouteUserHome              = RouteUser + "/home"
	RouteUserDocuments         = RouteUser + "/documents"
	RouteUserTransactions      = RouteUser + "/transactions"
	RouteUserTransactionsRange = RouteUserTransactions + "/range"

	// documents
	RouteDocuments       = RouteApiV1 + "/documents"
	RouteDocument        = RouteDocuments + "/:document_id"
	RouteDocumentContent = RouteDocument + "/content"

	// identity
	RouteIdentity           = RouteApiV1 + "/identity"
	RouteIdentityLookup     = RouteIdentity + "/lookup"
	RouteIdentityCheckEmail = RouteIdentity + "/check-email"

	// ops
	RouteHealth  = RouteApiV1 + "/healthz"
	RouteMetrics = RouteApiV1 + "/metrics"
)
