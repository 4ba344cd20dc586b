package acars

import (
	"encoding/json"
)

// envelope peeks at the discriminator before the full decode.
type envelope struct {
	Type string `json:"type"`
}

// DecodeMessage turns one raw bridge envelope into its typed message.
// Malformed JSON, a missing discriminator or an unknown tag all fail closed:
// the second return is false and the caller drops the input.
func DecodeMessage(raw []byte) (Message, bool) {
	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil || env.Type == "" {
		return nil, false
	}

	var msg Message
	var err error
	switch env.Type {
	case "telemetry":
		t := TelemetrySnapshot{}
		err = json.Unmarshal(raw, &t)
		msg = t
	case "auth":
		a := AuthState{}
		err = json.Unmarshal(raw, &a)
		msg = a
	case "connection":
		c := ConnectionState{}
		err = json.Unmarshal(raw, &c)
		msg = c
	case "flight":
		f := FlightState{}
		err = json.Unmarshal(raw, &f)
		msg = f
	case "score":
		s := ScoreResult{}
		err = json.Unmarshal(raw, &s)
		msg = s
	case "activity":
		a := ActivityEntry{}
		err = json.Unmarshal(raw, &a)
		msg = a
	case "exceedance":
		e := ExceedanceEntry{}
		err = json.Unmarshal(raw, &e)
		msg = e
	case "weather":
		w := WeatherReport{}
		err = json.Unmarshal(raw, &w)
		msg = w
	case "touchdown":
		t := TouchdownPoint{}
		err = json.Unmarshal(raw, &t)
		msg = t
	case "bid":
		b := BidData{}
		err = json.Unmarshal(raw, &b)
		msg = b
	case "updateStatus":
		u := UpdateStatus{}
		err = json.Unmarshal(raw, &u)
		msg = u
	default:
		return nil, false
	}
	if err != nil {
		return nil, false
	}

	return msg, true
}

// Router feeds decoded bridge messages to a single consumer in arrival
// order. Handling is synchronous per message, so messages of the same type
// are always applied FIFO; no cross-type ordering is promised.
type Router struct {
	inbox   chan Message
	handler func(Message)
	done    chan struct{}
}

func NewRouter(handler func(Message)) *Router {
	r := &Router{
		inbox:   make(chan Message, 256),
		handler: handler,
		done:    make(chan struct{}),
	}
	go r.run()
	return r
}

func (r *Router) run() {
	for m := range r.inbox {
		r.handler(m)
	}
	close(r.done)
}

// Dispatch decodes and enqueues one raw envelope. Unrecognized input is
// discarded silently; Dispatch never panics into the caller.
func (r *Router) Dispatch(raw []byte) {
	msg, ok := DecodeMessage(raw)
	if !ok {
		return
	}
	r.inbox <- msg
}

// Close stops the consumer after draining what was already queued.
func (r *Router) Close() {
	close(r.inbox)
	<-r.done
}
