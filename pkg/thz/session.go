// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2026 Konstantin Vogel

package thz

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"sync"
	"time"

	"go.uber.org/zap"
)

const (
	// DefaultTimeout bounds one request/response exchange. The controller
	// normally answers within a few hundred milliseconds; two seconds leaves
	// room for a busy bus.
	DefaultTimeout = 2 * time.Second

	// DefaultRetries is the number of attempts per exchange. Only checksum
	// failures and timeouts are retried, a NAK from the device is final.
	DefaultRetries = 3

	// handshakeGap is the pause after an attempt failed mid-handshake, long
	// enough for the controller to abandon the half-open exchange.
	handshakeGap = 100 * time.Millisecond
)

// Option configures a Session.
type Option func(*Session)

// WithTimeout sets the per-exchange timeout.
func WithTimeout(d time.Duration) Option {
	return func(s *Session) { s.timeout = d }
}

// WithRetries sets the number of attempts per exchange.
func WithRetries(n int) Option {
	return func(s *Session) {
		if n > 0 {
			s.retries = n
		}
	}
}

// WithLogger attaches a logger. Default is a no-op logger.
func WithLogger(log *zap.Logger) Option {
	return func(s *Session) { s.log = log }
}

// WithFirmware pins the register layout instead of probing the device's
// firmware register during Connect.
func WithFirmware(version string) Option {
	return func(s *Session) { s.firmwareOverride = version }
}

// Session drives request/response exchanges with one heat pump controller
// over any byte stream (serial port, TCP socket). Exchanges are serialized;
// a Session is safe for concurrent use.
type Session struct {
	conn    io.ReadWriter
	timeout time.Duration
	retries int
	log     *zap.Logger
	stats   *Statistics

	firmwareOverride string

	mu       sync.Mutex
	firmware string
	regs     *RegisterMap

	// Reader goroutine output. Decoupling the blocking Read lets exchange
	// deadlines fire even when the underlying stream has no deadline support.
	bytesCh chan byte
	errCh   chan error
	done    chan struct{}
	closed  sync.Once
}

// NewSession wraps an open connection. Call Connect before reading registers
// unless the firmware version was pinned with WithFirmware.
func NewSession(conn io.ReadWriter, opts ...Option) *Session {
	s := &Session{
		conn:    conn,
		timeout: DefaultTimeout,
		retries: DefaultRetries,
		log:     zap.NewNop(),
		stats:   NewStatistics(),
		bytesCh: make(chan byte, MaxTelegramSize),
		errCh:   make(chan error, 1),
		done:    make(chan struct{}),
	}
	for _, opt := range opts {
		opt(s)
	}
	go s.readLoop()
	return s
}

// Close stops the reader goroutine. The underlying connection is owned by
// the caller and is not closed here.
func (s *Session) Close() error {
	s.closed.Do(func() { close(s.done) })
	return nil
}

// Statistics returns the session's exchange counters.
func (s *Session) Statistics() *Statistics {
	return s.stats
}

// Firmware returns the firmware version the session operates against, empty
// before Connect.
func (s *Session) Firmware() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.firmware
}

// Registers returns the active register layout, nil before Connect.
func (s *Session) Registers() *RegisterMap {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.regs
}

// Connect identifies the controller and selects the matching register
// layout. With WithFirmware the version probe is skipped.
func (s *Session) Connect(ctx context.Context) error {
	version := s.firmwareOverride
	if version == "" {
		probed, err := s.probeFirmware(ctx)
		if err != nil {
			return err
		}
		version = probed
	}

	regs, err := ForVersion(version)
	if err != nil {
		return err
	}

	s.mu.Lock()
	s.firmware = version
	s.regs = regs
	s.mu.Unlock()

	s.log.Info("connected",
		zap.String("firmware", version),
		zap.String("layout", regs.Version()))
	return nil
}

func (s *Session) probeFirmware(ctx context.Context) (string, error) {
	req, err := BuildReadRequest("FD")
	if err != nil {
		return "", err
	}
	resp, err := s.Exchange(ctx, req)
	if err != nil {
		return "", err
	}
	data := resp.Data()
	if len(data) < 3 {
		return "", newErrorf(ErrTruncatedPayload, "firmware response is %d bytes", len(data))
	}
	raw := uint64(data[1])<<8 | uint64(data[2])
	return FormatVersion(raw), nil
}

// ReadRegister reads and decodes one register. Connect must have succeeded.
func (s *Session) ReadRegister(ctx context.Context, code string) (*Record, error) {
	regs := s.Registers()
	if regs == nil {
		return nil, newErrorf(ErrUnsupportedFirmware, "session not connected")
	}
	resp, err := s.ReadRaw(ctx, code)
	if err != nil {
		return nil, err
	}
	return regs.DecodeTelegram(resp)
}

// ReadRaw reads one register and returns the undecoded response telegram.
func (s *Session) ReadRaw(ctx context.Context, code string) (*Telegram, error) {
	req, err := BuildReadRequest(code)
	if err != nil {
		return nil, err
	}
	return s.Exchange(ctx, req)
}

// ReadSetting reads the current value of a writable setting.
func (s *Session) ReadSetting(ctx context.Context, name string) (float64, error) {
	regs := s.Registers()
	if regs == nil {
		return 0, newErrorf(ErrUnsupportedFirmware, "session not connected")
	}
	req, err := regs.BuildSettingRead(name)
	if err != nil {
		return 0, err
	}
	resp, err := s.Exchange(ctx, req)
	if err != nil {
		return 0, err
	}
	return regs.SettingValue(name, resp)
}

// WriteSetting validates and writes a setting value. Validation failures
// (unknown name, out-of-range value) happen before any bytes reach the
// device.
func (s *Session) WriteSetting(ctx context.Context, name string, value float64) error {
	regs := s.Registers()
	if regs == nil {
		return newErrorf(ErrUnsupportedFirmware, "session not connected")
	}
	req, err := regs.BuildWrite(name, value)
	if err != nil {
		return err
	}
	_, err = s.Exchange(ctx, req)
	return err
}

// Exchange performs one request/response cycle with retries. Checksum
// failures and timeouts are retried up to the configured attempt count; all
// other failures are final. Exchanges are serialized on the connection.
func (s *Session) Exchange(ctx context.Context, req *Telegram) (*Telegram, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var lastErr error
	for attempt := 1; attempt <= s.retries; attempt++ {
		if attempt > 1 {
			s.stats.RecordRetry()
			s.log.Debug("retrying exchange",
				zap.Int("attempt", attempt),
				zap.Error(lastErr))
			select {
			case <-time.After(handshakeGap):
			case <-ctx.Done():
				return nil, wrapErrorf(ErrTimeout, ctx.Err(), "exchange cancelled")
			}
		}

		resp, err := s.exchangeOnce(ctx, req)
		s.stats.RecordExchange(req.Direction(), err)
		if err == nil {
			return resp, nil
		}
		lastErr = err
		if !IsRetryable(err) {
			return nil, err
		}
	}
	return nil, lastErr
}

// exchangeOnce runs the three-step handshake:
//
//	-> STX                   <- DLE
//	-> telegram              <- DLE STX
//	-> DLE                   <- telegram (through DLE ETX)
//	-> DLE
func (s *Session) exchangeOnce(ctx context.Context, req *Telegram) (*Telegram, error) {
	deadline := time.Now().Add(s.timeout)

	s.drain()

	if err := s.writeBytes([]byte{STX}); err != nil {
		return nil, err
	}
	if err := s.expectByte(ctx, deadline, DLE, "greeting"); err != nil {
		return nil, err
	}

	wire, err := EncodeTelegram(req)
	if err != nil {
		return nil, err
	}
	s.log.Debug("sending telegram",
		zap.String("direction", req.Direction().String()),
		zap.String("bytes", fmt.Sprintf("% X", wire)))
	if err := s.writeBytes(wire); err != nil {
		return nil, err
	}
	if err := s.expectByte(ctx, deadline, DLE, "telegram ack"); err != nil {
		return nil, err
	}
	if err := s.expectByte(ctx, deadline, STX, "telegram ack"); err != nil {
		return nil, err
	}

	if err := s.writeBytes([]byte{DLE}); err != nil {
		return nil, err
	}

	resp, err := s.readTelegram(ctx, deadline)
	if err != nil {
		return nil, err
	}

	// Final ack releases the controller for the next exchange.
	if err := s.writeBytes([]byte{DLE}); err != nil {
		return nil, err
	}

	if req.Direction() == DirectionGet {
		if !bytes.HasPrefix(resp.Data(), req.Data()) {
			return nil, newErrorf(ErrFraming,
				"response register % X does not match request % X",
				resp.Data()[:min(len(resp.Data()), len(req.Data()))], req.Data())
		}
	}

	s.log.Debug("received telegram",
		zap.String("direction", resp.Direction().String()),
		zap.Int("data_bytes", len(resp.Data())))
	return resp, nil
}

// readTelegram feeds incoming bytes to a fresh decoder until it yields a
// telegram or the deadline passes.
func (s *Session) readTelegram(ctx context.Context, deadline time.Time) (*Telegram, error) {
	dec := NewDecoder()
	for {
		b, err := s.readByte(ctx, deadline, "response")
		if err != nil {
			return nil, err
		}
		t, err := dec.DecodeByte(b)
		if err != nil {
			return nil, err
		}
		if t != nil {
			return t, nil
		}
	}
}

// expectByte reads one byte and fails the handshake if it is anything else.
func (s *Session) expectByte(ctx context.Context, deadline time.Time, want byte, stage string) error {
	got, err := s.readByte(ctx, deadline, stage)
	if err != nil {
		return err
	}
	if got != want {
		if got >= nakTiming && got <= nakUnknownRegister {
			return deviceNAKError(got)
		}
		return newErrorf(ErrFraming, "%s: expected %#02x, got %#02x", stage, want, got)
	}
	return nil
}

func (s *Session) readByte(ctx context.Context, deadline time.Time, stage string) (byte, error) {
	remaining := time.Until(deadline)
	if remaining <= 0 {
		return 0, newErrorf(ErrTimeout, "%s: no response within %v", stage, s.timeout)
	}
	timer := time.NewTimer(remaining)
	defer timer.Stop()

	select {
	case b := <-s.bytesCh:
		return b, nil
	case err := <-s.errCh:
		return 0, wrapErrorf(ErrFraming, err, "%s: connection failed", stage)
	case <-timer.C:
		return 0, newErrorf(ErrTimeout, "%s: no response within %v", stage, s.timeout)
	case <-ctx.Done():
		return 0, wrapErrorf(ErrTimeout, ctx.Err(), "%s: cancelled", stage)
	case <-s.done:
		return 0, newErrorf(ErrFraming, "%s: session closed", stage)
	}
}

func (s *Session) writeBytes(p []byte) error {
	if _, err := s.conn.Write(p); err != nil {
		return wrapErrorf(ErrFraming, err, "write failed")
	}
	return nil
}

// drain discards bytes left over from an aborted exchange so the next
// handshake starts clean.
func (s *Session) drain() {
	for {
		select {
		case b := <-s.bytesCh:
			s.log.Debug("discarding stale byte", zap.Uint8("byte", b))
		default:
			return
		}
	}
}

// readLoop pumps the connection into the byte channel until the session is
// closed or the connection fails.
func (s *Session) readLoop() {
	buf := make([]byte, 64)
	for {
		n, err := s.conn.Read(buf)
		for i := 0; i < n; i++ {
			select {
			case s.bytesCh <- buf[i]:
			case <-s.done:
				return
			}
		}
		if err != nil {
			select {
			case s.errCh <- err:
			case <-s.done:
			}
			return
		}
		select {
		case <-s.done:
			return
		default:
		}
	}
}
