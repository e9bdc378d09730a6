package whitelist

import (
	"strings"

	"go.uber.org/zap"
)

// AddressList checks sender addresses against an exact-match allow-list.
// Used for the VIP "always preserve" rule.
type AddressList struct {
	addresses map[string]struct{}
	logger    *zap.Logger
}

// NewAddressList creates an address allow-list. Addresses are normalized to
// lowercase.
func NewAddressList(addresses []string, logger *zap.Logger) *AddressList {
	normalized := make(map[string]struct{}, len(addresses))
	for _, addr := range addresses {
		addr = strings.ToLower(strings.TrimSpace(addr))
		if addr != "" {
			normalized[addr] = struct{}{}
		}
	}

	if len(normalized) > 0 && logger != nil {
		logger.Info("Initialized VIP address list", zap.Int("addresses", len(normalized)))
	}

	return &AddressList{addresses: normalized, logger: logger}
}

// Contains reports whether the address is allow-listed.
func (l *AddressList) Contains(address string) bool {
	if len(l.addresses) == 0 {
		return false
	}
	_, ok := l.addresses[strings.ToLower(strings.TrimSpace(address))]
	if ok && l.logger != nil {
		l.logger.Debug("Address is allow-listed", zap.String("address", address))
	}
	return ok
}

// Len returns the number of allow-listed addresses.
func (l *AddressList) Len() int {
	return len(l.addresses)
}

// DomainList checks sender addresses against known domains by substring,
// matching the mail provider's loose domain conventions (a fragment like
// "payroll" matches payroll@company.com and hr-payroll.example.org alike).
type DomainList struct {
	domains []string
}

// NewDomainList creates a domain fragment list, normalized to lowercase.
func NewDomainList(domains []string) *DomainList {
	normalized := make([]string, 0, len(domains))
	for _, domain := range domains {
		domain = strings.ToLower(strings.TrimSpace(domain))
		if domain != "" {
			normalized = append(normalized, domain)
		}
	}
	return &DomainList{domains: normalized}
}

// Match returns the first matching fragment and true when the address
// contains any listed domain fragment.
func (l *DomainList) Match(address string) (string, bool) {
	if address == "" {
		return "", false
	}
	lower := strings.ToLower(address)
	for _, domain := range l.domains {
		if strings.Contains(lower, domain) {
			return domain, true
		}
	}
	return "", false
}
