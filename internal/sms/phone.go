// Package sms delivers text messages through Twilio.
package sms

import "strings"

const defaultCountryCode = "964"

var phoneJunk = strings.NewReplacer(" ", "", "-", "", "(", "", ")", "", "\t", "")

// NormalizePhone converts a locally typed number to E.164. A leading 00 is
// the international prefix and a single leading 0 is the national trunk
// prefix, replaced by countryCode.
func NormalizePhone(raw, countryCode string) string {
	phone := phoneJunk.Replace(strings.TrimSpace(raw))
	if phone == "" {
		return ""
	}
	countryCode = strings.TrimPrefix(strings.TrimSpace(countryCode), "+")
	if countryCode == "" {
		countryCode = defaultCountryCode
	}

	switch {
	case strings.HasPrefix(phone, "+"):
		return phone
	case strings.HasPrefix(phone, "00"):
		return "+" + phone[2:]
	case strings.HasPrefix(phone, "0"):
		return "+" + countryCode + phone[1:]
	}
	return "+" + phone
}
