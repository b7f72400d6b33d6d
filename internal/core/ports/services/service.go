package services

// ServiceContainer bundles every service facade for injection into the
// handler layer.
type ServiceContainer struct {
	User        UserSvcFacade
	Account     AccountSvcFacade
	Category    CategorySvcFacade
	Transaction TransactionSvcFacade
	Dashboard   DashboardSvcFacade
	Token       TokenSvcFacade
	GoogleOAuth GoogleOAuthSvcFacade
}
