package application

import "fmt"

var transitions = map[Status][]Status{
	StatusPending:  {StatusApproved, StatusRejected},
	StatusApproved: {StatusCompleted, StatusCancelled},
}

func CanTransition(from, to Status) bool {
	for _, next := range transitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// targetStatus reports whether an admin may ask for status at all.
func targetStatus(status Status) bool {
	return status == StatusApproved ||
		status == StatusRejected ||
		status == StatusCompleted ||
		status == StatusCancelled
}

type notificationTemplate struct {
	title   string
	message string
}

var statusTemplates = map[Status]notificationTemplate{
	StatusApproved: {
		title:   "서비스 신청이 승인되었습니다",
		message: "%s 신청이 승인되었습니다. 이제 예약을 진행하실 수 있습니다.",
	},
	StatusRejected: {
		title:   "서비스 신청이 거절되었습니다",
		message: "%s 신청이 거절되었습니다. 자세한 내용은 신청 내역을 확인해주세요.",
	},
	StatusCompleted: {
		title:   "서비스가 완료되었습니다",
		message: "%s 서비스가 완료되었습니다. 이용해 주셔서 감사합니다.",
	},
	StatusCancelled: {
		title:   "서비스 신청이 취소되었습니다",
		message: "%s 신청이 취소되었습니다.",
	},
}

func statusMessage(status Status, serviceName string) (string, string) {
	tmpl, ok := statusTemplates[status]
	if !ok {
		return "", ""
	}
	return tmpl.title, fmt.Sprintf(tmpl.message, serviceName)
}
