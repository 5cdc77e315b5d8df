package wmbus

import "github.com/sirupsen/logrus"

// Match is a successfully decoded field.
type Match struct {
	Offset int     // index of the first code byte
	Raw    uint64  // decoded BCD integer
	Value  float64 // Raw / Divisor
}

// Scanner searches telegrams for register codes. The zero value logs to the
// logrus standard logger.
type Scanner struct {
	Log logrus.FieldLogger
}

func (s Scanner) logger() logrus.FieldLogger {
	if s.Log == nil {
		return logrus.StandardLogger()
	}
	return s.Log
}

// enabled reports whether level would be emitted. Unknown FieldLogger
// implementations are assumed to want everything.
func (s Scanner) enabled(level logrus.Level) bool {
	switch l := s.logger().(type) {
	case *logrus.Logger:
		return l.IsLevelEnabled(level)
	case *logrus.Entry:
		return l.Logger.IsLevelEnabled(level)
	}
	return true
}

// entry builds the log context for spec. Only called once there is something
// to report.
func (s Scanner) entry(spec FieldSpec) *logrus.Entry {
	return s.logger().WithFields(logrus.Fields{
		"field":    spec.Name,
		"register": spec.CodeHex(),
	})
}

// Scan walks the telegram after the link header looking for spec.Code and
// decodes the first qualifying occurrence. A code whose selector byte does not
// match is skipped and the search continues. The field is absent when no
// occurrence qualifies, when the code, selector or payload would run past the
// end of the telegram, or when the payload is not valid BCD.
func (s Scanner) Scan(telegram []byte, spec FieldSpec) (Match, bool) {
	if spec.Width <= 0 || spec.Skip < 0 {
		return Match{}, false
	}
	i := HeaderLen
	for i < len(telegram) && spec.Width <= len(telegram)-i {
		if readCode(telegram[i:], spec.Width) != spec.Code {
			i++
			continue
		}
		// Bounds are checked on the remaining slice; Skip may be arbitrarily large.
		rest := telegram[i+spec.Width:]
		if spec.Skip > len(rest) {
			return Match{}, false
		}
		rest = rest[spec.Skip:]
		if spec.Selector != nil {
			if len(rest) == 0 {
				return Match{}, false
			}
			if rest[0] != *spec.Selector {
				s.entry(spec).WithField("selector", rest[0]).Debug("selector mismatch, continuing scan")
				i = len(telegram) - len(rest) + 1
				continue
			}
			rest = rest[1:]
		}
		n := spec.PayloadLen()
		if n < 0 || n > len(rest) {
			return Match{}, false
		}
		raw, err := DecodeBCDBigEndian(rest[:n])
		if err != nil {
			s.entry(spec).WithError(err).WithField("offset", i).Debug("malformed payload, field skipped")
			return Match{}, false
		}
		m := Match{Offset: i, Raw: raw, Value: float64(raw) / spec.Divisor}
		if s.enabled(logrus.TraceLevel) {
			s.entry(spec).WithFields(logrus.Fields{
				"offset": i,
				"raw":    raw,
				"value":  m.Value,
			}).Trace("found register")
		}
		return m, true
	}
	return Match{}, false
}
