package handler

import (
	adminhandler "care-app-go/internal/transport/httpserver/handler/admin"
	applicationshandler "care-app-go/internal/transport/httpserver/handler/applications"
	commonhandler "care-app-go/internal/transport/httpserver/handler/common"
	familieshandler "care-app-go/internal/transport/httpserver/handler/families"
	notificationshandler "care-app-go/internal/transport/httpserver/handler/notifications"
	reservationshandler "care-app-go/internal/transport/httpserver/handler/reservations"
)

type Handlers struct {
	Common        *commonhandler.Handlers
	Families      *familieshandler.Handlers
	Applications  *applicationshandler.Handlers
	Reservations  *reservationshandler.Handlers
	Notifications *notificationshandler.Handlers
	Admin         *adminhandler.Handlers
}

func New(
	common *commonhandler.Handlers,
	families *familieshandler.Handlers,
	applications *applicationshandler.Handlers,
	reservations *reservationshandler.Handlers,
	notifications *notificationshandler.Handlers,
	admin *adminhandler.Handlers,
) *Handlers {
	return &Handlers{
		Common:        common,
		Families:      families,
		Applications:  applications,
		Reservations:  reservations,
		Notifications: notifications,
		Admin:         admin,
	}
}
