package sms

import (
	"errors"
	"regexp"
	"strings"

	"github.com/twilio/twilio-go/client"
)

var ansiEscape = regexp.MustCompile(`\x1b\[[0-9;]*[A-Za-z]`)

var knownCodes = map[int]string{
	20003: "بيانات اعتماد Twilio غير صحيحة. تحقق من Account SID و Auth Token.",
	20005: "حساب Twilio غير مفعّل أو موقوف.",
	21211: "رقم الهاتف المستلم غير صالح.",
	21614: "رقم الهاتف المستلم غير صالح.",
	21212: "اسم المرسل غير مدعوم لهذه الوجهة. استخدم رقم Twilio كمرسل.",
	21408: "اسم المرسل غير مدعوم لهذه الوجهة. استخدم رقم Twilio كمرسل.",
	21612: "اسم المرسل غير مدعوم لهذه الوجهة. استخدم رقم Twilio كمرسل.",
}

// Describe turns a provider error into a message for the UI. Known Twilio
// codes get a localized explanation; anything else keeps the provider text.
func Describe(err error) string {
	if err == nil {
		return ""
	}
	var restErr *client.TwilioRestError
	if errors.As(err, &restErr) {
		if msg, ok := knownCodes[restErr.Code]; ok {
			return msg
		}
		if restErr.Message != "" {
			return StripANSI(restErr.Message)
		}
	}
	return StripANSI(err.Error())
}

// StripANSI removes terminal colour sequences some client errors carry.
func StripANSI(s string) string {
	return strings.TrimSpace(ansiEscape.ReplaceAllString(s, ""))
}
