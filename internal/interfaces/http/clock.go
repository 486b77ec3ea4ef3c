package http

import "time"

// Clock reloj de los handlers, en la zona horaria del servicio. Inyectable para tests.
type Clock struct {
	now func() time.Time
	loc *time.Location
}

// NewClock construye el reloj. now nil = time.Now; loc nil = UTC.
func NewClock(now func() time.Time, loc *time.Location) Clock {
	if now == nil {
		now = time.Now
	}
	if loc == nil {
		loc = time.UTC
	}
	return Clock{now: now, loc: loc}
}

// Now instante actual en la zona del servicio.
func (c Clock) Now() time.Time {
	return c.now().In(c.loc)
}

// Location zona del servicio.
func (c Clock) Location() *time.Location {
	return c.loc
}
