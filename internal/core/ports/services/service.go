package services

// ServiceContainer holds instances of all the application services.
// This is the main entry point for accessing service functionality and
// is used throughout the application, particularly in the handlers.
type ServiceContainer struct {
	Auth      AuthSvc
	User      UserSvcFacade
	Listing   ListingSvcFacade
	Premium   PremiumSvc
	Settings  SettingsSvc
	Reporting ReportingService
	Media     MediaSvc
	Visitor   VisitorSvc
}
