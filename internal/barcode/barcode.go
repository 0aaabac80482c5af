// Package barcode is the boundary to the barcode-reading collaborator: a
// frame source (camera), a decoder that finds barcode payloads in a frame,
// and a scanner worker that delivers one sane payload per request. QR label
// generation for printing lives here too.
package barcode

import (
	"time"

	jsoniter "github.com/json-iterator/go"
	log "github.com/sirupsen/logrus"
)

// Payload identity types, matching the table the uid belongs to.
const (
	TypeBook = "book"
	TypeUser = "user"
)

// Payload is one decoded barcode identity.
type Payload struct {
	Type string `json:"type"`
	UID  int64  `json:"uid"`
}

// FrameSource produces raw frames to scan. A camera error is transient; the
// scanner sleeps and retries.
type FrameSource interface {
	Frame() ([]byte, error)
}

// Decoder extracts barcode payloads from one frame. An empty result means
// no barcode was visible.
type Decoder interface {
	Decode(frame []byte) [][]byte
}

var codec = jsoniter.ConfigFastest

// parsePayload sanitizes one decoded barcode. The payload must be a JSON
// object carrying "type" and a numeric "uid"; anything else is discarded.
func parsePayload(raw []byte) (Payload, bool) {
	var data map[string]any
	if err := codec.Unmarshal(raw, &data); err != nil {
		return Payload{}, false
	}

	typ, ok := data["type"].(string)
	if !ok {
		return Payload{}, false
	}

	uidRaw, ok := data["uid"]
	if !ok {
		return Payload{}, false
	}
	uid, ok := uidRaw.(float64)
	if !ok {
		return Payload{}, false
	}

	return Payload{Type: typ, UID: int64(uid)}, true
}

// Scanner is the barcode worker: it reads frames only while a request is
// pending and delivers exactly one payload per request, in request order.
type Scanner struct {
	source   FrameSource
	decoder  Decoder
	interval time.Duration

	requests chan request
	stop     chan struct{}
	stopped  chan struct{}
}

type request struct {
	resp chan result
}

type result struct {
	payload Payload
	ok      bool
}

// NewScanner creates a scanner over the given source and decoder. interval
// is the pause between frames when nothing decodes.
func NewScanner(source FrameSource, decoder Decoder, interval time.Duration) *Scanner {
	return &Scanner{
		source:   source,
		decoder:  decoder,
		interval: interval,
		requests: make(chan request),
		stop:     make(chan struct{}),
		stopped:  make(chan struct{}),
	}
}

// Start launches the scan loop.
func (s *Scanner) Start() *Scanner {
	go s.loop()
	return s
}

// Stop aborts any in-progress scan and waits for the loop to exit.
func (s *Scanner) Stop() {
	close(s.stop)
	close(s.requests)
	<-s.stopped
}

// GetBarcode requests one decoded payload, waiting at most timeout.
// Returns false if the deadline passes or the scanner is stopping.
func (s *Scanner) GetBarcode(timeout time.Duration) (Payload, bool) {
	req := request{resp: make(chan result, 1)}

	timer := time.NewTimer(timeout)
	defer timer.Stop()

	select {
	case s.requests <- req:
	case <-timer.C:
		return Payload{}, false
	}

	select {
	case res := <-req.resp:
		return res.payload, res.ok
	case <-timer.C:
		return Payload{}, false
	}
}

func (s *Scanner) loop() {
	for req := range s.requests {
		req.resp <- s.scanOne()
	}
	close(s.stopped)
}

// scanOne reads frames until one yields a sane payload. Malformed payloads
// are silently discarded and scanning continues with the next frame.
func (s *Scanner) scanOne() result {
	for {
		select {
		case <-s.stop:
			return result{}
		default:
		}

		frame, err := s.source.Frame()
		if err != nil {
			log.WithError(err).Warn("frame source unavailable, retrying")
			s.pause()
			continue
		}

		for _, raw := range s.decoder.Decode(frame) {
			payload, ok := parsePayload(raw)
			if !ok {
				log.Debug("discarded malformed barcode payload")
				continue
			}
			return result{payload: payload, ok: true}
		}

		s.pause()
	}
}

func (s *Scanner) pause() {
	select {
	case <-s.stop:
	case <-time.After(s.interval):
	}
}
