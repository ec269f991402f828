package service

import "time"

// SetClock replaces the service clock so idle eviction can be tested.
func (s *DesignerService) SetClock(now func() time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.now = now
}
