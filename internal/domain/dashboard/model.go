package dashboard

import "care-app-go/internal/domain/application"

const recentApplicationsLimit = 5

type Counts struct {
	Users                int64
	Families             int64
	Applications         int64
	PendingApplications  int64
	ApprovedApplications int64
	Reservations         int64
	PendingReservations  int64
}

type Overview struct {
	Counts             Counts
	RecentApplications []application.Application
}
