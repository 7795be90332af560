package monitor

import (
	"slices"
	"time"

	"github.com/chetansierra/temperature-dashboard-sub001/pkg/models"
)

// Authorization predicates. Pure functions over a Profile and a target
// reference; callers translate false into the HTTP shape they need. Cross
// tenant denials must be indistinguishable from missing resources, so the
// predicates never report why.

func profileExpired(p *models.Profile, now time.Time) bool {
	return p.AccessExpiresAt != nil && now.After(*p.AccessExpiresAt)
}

// CanAccessSite reports whether the profile may read the given site's data.
func CanAccessSite(p *models.Profile, site *models.Site, now time.Time) bool {
	if p == nil || site == nil || profileExpired(p, now) {
		return false
	}
	switch p.Role {
	case models.RoleAdmin:
		return true
	case models.RoleMaster:
		return site.TenantID == p.TenantID
	case models.RoleUser:
		return site.TenantID == p.TenantID && slices.Contains(p.GrantedSites, site.ID)
	}
	return false
}

// CanManageAlerts reports whether the profile may mutate alerts on the site.
// Admin is view-everything, mutate-nothing; read-only profiles never mutate.
func CanManageAlerts(p *models.Profile, site *models.Site, now time.Time) bool {
	if p == nil || site == nil || profileExpired(p, now) || p.ReadOnly {
		return false
	}
	switch p.Role {
	case models.RoleMaster:
		return site.TenantID == p.TenantID
	case models.RoleUser:
		return site.TenantID == p.TenantID && slices.Contains(p.GrantedSites, site.ID)
	}
	return false
}

// CanManageThresholds is tenant-admin scope only; operators never write
// thresholds regardless of grants.
func CanManageThresholds(p *models.Profile, now time.Time) bool {
	if p == nil || profileExpired(p, now) || p.ReadOnly {
		return false
	}
	return p.Role == models.RoleMaster
}

// SiteScope returns the site ids a profile may list within its tenant.
// all=true means no site restriction (admin across tenants, master within
// its own). An expired profile or a user with no grants gets an empty,
// non-nil id list: list operations answer empty, they do not error.
func SiteScope(p *models.Profile, now time.Time) (ids []string, all bool) {
	if p == nil || profileExpired(p, now) {
		return []string{}, false
	}
	switch p.Role {
	case models.RoleAdmin, models.RoleMaster:
		return nil, true
	case models.RoleUser:
		if len(p.GrantedSites) == 0 {
			return []string{}, false
		}
		return p.GrantedSites, false
	}
	return []string{}, false
}
