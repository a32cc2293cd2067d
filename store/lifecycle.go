package store

import (
	"time"

	"wayfindr-map/models"
)

// Zone lifecycle: a zone is Active, Inactive, or Expired. Expiration is a
// lazy, read-time transition — there is deliberately no background sweep,
// which would be a second concurrent writer path. Every zone-reading
// operation resolves expiration first, and the stored active flag is
// corrected as a side effect so direct reads that follow stay consistent.

// zoneExpiredAt reports whether z's deadline has passed at t.
func zoneExpiredAt(z *models.Zone, t time.Time) bool {
	return z.ExpiresAt != nil && !t.Before(*z.ExpiresAt)
}

// EffectiveState returns the lifecycle state of a zone as of now: Expired
// when the deadline has passed regardless of the stored flag, otherwise the
// stored flag decides.
func (s *MapStore) EffectiveState(z *models.Zone) models.ZoneState {
	switch {
	case zoneExpiredAt(z, s.now()):
		return models.ZoneStateExpired
	case z.Active:
		return models.ZoneStateActive
	default:
		return models.ZoneStateInactive
	}
}

// resolveExpired corrects the stored active flag of every zone whose
// deadline has passed. Reads call it before taking the read lock; the write
// lock is only taken when at least one correction is pending, so the
// steady-state read path stays concurrent.
func (s *MapStore) resolveExpired() []string {
	now := s.now()

	s.mu.RLock()
	dirty := s.hasExpiredActiveLocked(now)
	s.mu.RUnlock()
	if !dirty {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	var corrected []string
	for _, floor := range s.floors {
		for _, z := range floor.Zones {
			if z.Active && zoneExpiredAt(z, now) {
				z.Active = false
				corrected = append(corrected, z.ID)
			}
		}
	}
	return corrected
}

// ResolveExpired runs the lazy expiration pass and returns the ids of zones
// whose stored flag was corrected, so the caller can mirror the correction
// to durable storage.
func (s *MapStore) ResolveExpired() []string {
	return s.resolveExpired()
}

func (s *MapStore) hasExpiredActiveLocked(now time.Time) bool {
	for _, floor := range s.floors {
		for _, z := range floor.Zones {
			if z.Active && zoneExpiredAt(z, now) {
				return true
			}
		}
	}
	return false
}
