package pmic

import (
	"context"
	"errors"
	"fmt"

	"github.com/edaniels/golog"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"npm1300-go/bus"
	"npm1300-go/errcode"
	"npm1300-go/types"
	"npm1300-go/x/timex"
)

// Topic layout:
//
//	pmic/state                       retained service status
//	pmic/<id>/<kind>/info            retained capability info
//	pmic/<id>/<kind>/value           readings
//	pmic/<id>/<kind>/state           retained link state
//	pmic/<id>/control/<method>       requests, answered on ReplyTo
const TopicRoot = "pmic"

// MethodReadNow is served by the service itself rather than the adaptor.
const MethodReadNow = "read_now"

type entry struct {
	ad *Adaptor
	sm *Sampler
}

// Service runs one sampler per adaptor, publishes their results on the bus
// and dispatches control requests to the owning adaptor.
type Service struct {
	conn    *bus.Connection
	log     golog.Logger
	results chan Result
	ctrl    *bus.Subscription
	devices map[string]*entry
	order   []string
}

// NewService subscribes to control requests immediately, so requests sent
// before Run are queued (up to the bus queue length) rather than lost. Run
// releases the subscription when it returns; a Service runs once.
func NewService(conn *bus.Connection, logger golog.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}
	return &Service{
		conn:    conn,
		log:     logger,
		results: make(chan Result, 8),
		ctrl:    conn.Subscribe(bus.Topic{TopicRoot, bus.SingleWild, "control", bus.SingleWild}),
		devices: make(map[string]*entry),
	}
}

// Add registers an initialised adaptor. It must be called before Run.
func (s *Service) Add(ad *Adaptor, cfg SamplerConfig) error {
	if _, dup := s.devices[ad.ID()]; dup {
		return fmt.Errorf("pmic: duplicate device id %q", ad.ID())
	}
	s.devices[ad.ID()] = &entry{ad: ad, sm: NewSampler(cfg, ad, s.results, s.log)}
	s.order = append(s.order, ad.ID())
	return nil
}

// Run serves until ctx is done. It returns nil on cancellation.
func (s *Service) Run(ctx context.Context) error {
	defer s.conn.Unsubscribe(s.ctrl)
	if len(s.devices) == 0 {
		return errors.New("pmic: no devices")
	}

	for _, id := range s.order {
		for _, c := range s.devices[id].ad.Capabilities() {
			s.pubRet(capTopic(id, c.Kind, "info"), c.Info)
		}
	}

	grp, gctx := errgroup.WithContext(ctx)
	for _, id := range s.order {
		sm := s.devices[id].sm
		grp.Go(func() error { return sm.Run(gctx) })
	}
	s.publishState("running", nil)
	s.log.Infow("pmic service running", "devices", s.order)

	ctrl := s.ctrl.Channel()
	for {
		select {
		case <-gctx.Done():
			err := grp.Wait()
			s.publishState("stopped", err)
			return err
		case r := <-s.results:
			s.handleResult(r)
		case m, ok := <-ctrl:
			if !ok {
				s.log.Warnw("control subscription closed")
				ctrl = nil
				continue
			}
			s.handleControl(m)
		}
	}
}

func (s *Service) handleResult(r Result) {
	now := timex.NowMs()
	for _, rd := range r.Sample {
		s.conn.Publish(s.conn.NewMessage(capTopic(r.ID, rd.Kind, "value"), rd.Payload, false))
	}
	state := types.CapabilityStatus{Link: types.LinkUp, TS: now}
	if r.Err != nil {
		state = types.CapabilityStatus{Link: types.LinkDegraded, TS: now, Code: string(r.Code), Error: r.Err.Error()}
	}
	for _, rd := range r.Sample {
		s.pubRet(capTopic(r.ID, rd.Kind, "state"), state)
	}
}

// handleControl expects pmic/<id>/control/<method>.
func (s *Service) handleControl(m *bus.Message) {
	if len(m.Topic) != 4 {
		s.replyErr(m, errcode.InvalidParams, "bad control topic")
		return
	}
	id, method := m.Topic[1], m.Topic[3]
	ent, ok := s.devices[id]
	if !ok {
		s.replyErr(m, errcode.InvalidParams, "unknown device "+id)
		return
	}
	if method == MethodReadNow {
		if !ent.sm.ReadNow() {
			s.replyErr(m, errcode.Timeout, "request queue full")
			return
		}
		s.conn.Reply(m, map[string]any{"ok": true}, false)
		return
	}
	res, err := ent.ad.Control(method, m.Payload)
	if err != nil {
		s.replyErr(m, errcode.Of(err), err.Error())
		return
	}
	s.conn.Reply(m, res, false)
}

func (s *Service) replyErr(req *bus.Message, c errcode.Code, msg string) {
	s.conn.Reply(req, map[string]any{"ok": false, "error": string(c), "msg": msg}, false)
}

func (s *Service) publishState(status string, err error) {
	st := types.ServiceState{Status: status, TS: timex.NowMs()}
	if err != nil {
		st.Error = err.Error()
	}
	s.pubRet(bus.Topic{TopicRoot, "state"}, st)
}

func (s *Service) pubRet(t bus.Topic, p any) {
	s.conn.Publish(s.conn.NewMessage(t, p, true))
}

func capTopic(id string, kind types.Kind, rest ...string) bus.Topic {
	return bus.Topic{TopicRoot, id, string(kind)}.Append(rest...)
}
