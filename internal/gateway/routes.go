package gateway

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/WailSalutem-Health-Care/hospital-console/internal/config"
)

// PatientPrefix is forwarded untouched; every other prefix is rewritten to it.
const PatientPrefix = "/api"

// Route maps one public path prefix onto a backend.
type Route struct {
	Prefix   string
	Upstream *url.URL
}

// RoutesFromConfig builds the prefix table in the order the backends are
// listed in the configuration.
func RoutesFromConfig(cfg *config.Gateway) ([]Route, error) {
	table := []struct {
		prefix string
		raw    string
	}{
		{PatientPrefix, cfg.PatientURL},
		{"/apt-api", cfg.AppointURL},
		{"/emr-api", cfg.EMRURL},
		{"/bill-api", cfg.BillingURL},
		{"/notif-api", cfg.NotifyURL},
		{"/pharm-api", cfg.PharmacyURL},
		{"/lab-api", cfg.LabURL},
		{"/bed-api", cfg.BedURL},
		{"/staff-api", cfg.StaffURL},
		{"/inv-api", cfg.InventoryURL},
		{"/blood-api", cfg.BloodURL},
	}

	routes := make([]Route, 0, len(table))
	for _, t := range table {
		u, err := parseUpstream(t.raw)
		if err != nil {
			return nil, fmt.Errorf("upstream for %s: %w", t.prefix, err)
		}
		routes = append(routes, Route{Prefix: t.prefix, Upstream: u})
	}
	return routes, nil
}

func parseUpstream(raw string) (*url.URL, error) {
	u, err := url.Parse(strings.TrimRight(strings.TrimSpace(raw), "/"))
	if err != nil {
		return nil, err
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("unsupported scheme %q in %q", u.Scheme, raw)
	}
	if u.Host == "" {
		return nil, fmt.Errorf("missing host in %q", raw)
	}
	return u, nil
}

// rewritePath maps /<prefix>/rest onto /api/rest.
func rewritePath(prefix, path string) string {
	if prefix == PatientPrefix {
		return path
	}
	return PatientPrefix + strings.TrimPrefix(path, prefix)
}
