package main

import (
	"github.com/Kotlang/leadsGo/appconfig"
	"github.com/Kotlang/leadsGo/auth"
	"github.com/Kotlang/leadsGo/db"
	"github.com/Kotlang/leadsGo/service"
)

type Inject struct {
	CrmDb db.CrmDbInterface

	AuthService *service.AuthService
	LeadService *service.LeadService
}

func NewInject(config *appconfig.AppConfig, crmDb db.CrmDbInterface) *Inject {
	inj := &Inject{}
	inj.CrmDb = crmDb

	cookies := auth.CookieSettings{
		Domain: config.CookieDomain,
		Secure: config.CookieSecure,
	}

	inj.AuthService = service.ProvideAuthService(crmDb.Users(), config.AccessSecret, cookies)
	inj.LeadService = service.ProvideLeadService(crmDb.Leads())

	return inj
}
