package whitelist

import (
	"testing"

	"go.uber.org/zap"
)

func TestAddressList(t *testing.T) {
	list := NewAddressList([]string{" Boss@Company.COM ", "", "mum@family.net"}, zap.NewNop())

	if list.Len() != 2 {
		t.Errorf("Len = %d, want 2", list.Len())
	}
	if !list.Contains("boss@company.com") {
		t.Error("lookup should be case and whitespace insensitive")
	}
	if !list.Contains("  MUM@FAMILY.NET ") {
		t.Error("lookup should normalize the query too")
	}
	if list.Contains("stranger@company.com") {
		t.Error("unlisted address matched")
	}

	empty := NewAddressList(nil, nil)
	if empty.Contains("anyone@anywhere.com") {
		t.Error("empty list matched")
	}
}

func TestDomainList(t *testing.T) {
	list := NewDomainList([]string{"gov.uk", "payroll", ""})

	if domain, ok := list.Match("refunds@hmrc.gov.uk"); !ok || domain != "gov.uk" {
		t.Errorf("Match = %q, %v", domain, ok)
	}
	if domain, ok := list.Match("PAYROLL@company.example"); !ok || domain != "payroll" {
		t.Errorf("fragment match = %q, %v", domain, ok)
	}
	if _, ok := list.Match("news@example.com"); ok {
		t.Error("unlisted domain matched")
	}
	if _, ok := list.Match(""); ok {
		t.Error("empty address matched")
	}
}
