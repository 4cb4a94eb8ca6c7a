package sounds

import "time"

func SetClock(s *service, now func() time.Time) {
	s.now = now
}
