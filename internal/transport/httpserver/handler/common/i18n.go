package common

import (
	"net/http"

	"golang.org/x/text/language"
)

var (
	supportedLanguages = []language.Tag{language.English, language.Korean}
	languageMatcher    = language.NewMatcher(supportedLanguages)
)

// koreanMessages translates error codes and field messages. English is the
// source language, so it needs no table.
var koreanMessages = map[string]string{
	"invalid_json":                     "요청 본문이 올바른 JSON이 아닙니다",
	"internal_error":                   "서버 오류가 발생했습니다",
	"unauthenticated":                  "로그인이 필요합니다",
	"forbidden":                        "접근 권한이 없습니다",
	"admin_required":                   "관리자 권한이 필요합니다",
	"validation_failed":                "입력값이 올바르지 않습니다",
	"empty_update":                     "변경할 항목이 없습니다",
	"family_not_found":                 "가족 정보를 찾을 수 없습니다",
	"service_not_found":                "서비스를 찾을 수 없습니다",
	"application_not_found":            "신청서를 찾을 수 없습니다",
	"approved_application_not_found":   "승인된 신청서를 찾을 수 없습니다",
	"reservation_not_found":            "예약을 찾을 수 없습니다",
	"notification_not_found":           "알림을 찾을 수 없습니다",
	"profile_not_found":                "사용자 정보를 찾을 수 없습니다",
	"invalid_status_transition":        "허용되지 않는 상태 변경입니다",
	"status_changed":                   "다른 요청에 의해 상태가 변경되었습니다",
	"reservation_terminal":             "완료되었거나 취소된 예약입니다",
	"admin_fields_forbidden":           "관리자만 상태와 관리자 메모를 변경할 수 있습니다",
	"idempotency_key_payload_mismatch": "같은 요청 키로 다른 내용이 전송되었습니다",
	"request_in_progress":              "같은 요청을 처리하는 중입니다",
	"rate_limited":                     "요청이 너무 많습니다",
	"invalid_limit":                    "limit 값이 올바르지 않습니다",

	"family name is required":         "가족 이름을 입력해 주세요",
	"must be at least 10 characters":  "10자 이상 입력해 주세요",
	"must be at least 1":              "1 이상이어야 합니다",
	"must be HH:MM":                   "HH:MM 형식이어야 합니다",
	"must be later than start time":   "시작 시간보다 늦어야 합니다",
	"must be today or later":          "오늘 이후 날짜여야 합니다",
	"must be YYYY-MM-DD":              "YYYY-MM-DD 형식이어야 합니다",
	"service not found":               "서비스를 찾을 수 없습니다",
	"service is not available":        "현재 이용할 수 없는 서비스입니다",
	"family not found":                "가족 정보를 찾을 수 없습니다",
	"unknown status":                  "알 수 없는 상태입니다",
	"must be 1 to 128 characters":     "1자 이상 128자 이하여야 합니다",
	"must be one of APPROVED, REJECTED, COMPLETED, CANCELLED": "APPROVED, REJECTED, COMPLETED, CANCELLED 중 하나여야 합니다",
}

// Language negotiates the response language from Accept-Language.
func Language(r *http.Request) language.Tag {
	tags, _, err := language.ParseAcceptLanguage(r.Header.Get("Accept-Language"))
	if err != nil || len(tags) == 0 {
		return language.English
	}
	_, index, confidence := languageMatcher.Match(tags...)
	if confidence == language.No {
		return language.English
	}
	return supportedLanguages[index]
}

// Localize returns the message for key in the request language, or fallback.
func Localize(r *http.Request, key, fallback string) string {
	if Language(r) != language.Korean {
		return fallback
	}
	if message, ok := koreanMessages[key]; ok {
		return message
	}
	return fallback
}

func LocalizeFields(r *http.Request, fields map[string]string) map[string]string {
	if len(fields) == 0 {
		return nil
	}
	localized := make(map[string]string, len(fields))
	for field, message := range fields {
		localized[field] = Localize(r, message, message)
	}
	return localized
}
