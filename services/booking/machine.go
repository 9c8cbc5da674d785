package booking

import (
	"fmt"
	"time"

	"concierge/database/repository/records"
	"concierge/models"

	"go.uber.org/zap"
)

// State names the slot the flow is waiting on. States advance in strict
// forward order; a completed booking resets straight back to StateDate.
type State int

const (
	StateDate State = iota
	StateTime
	StateName
	StateEmail
	StatePhone
)

// Session is one conversation's booking progress: the current state plus the
// slots confirmed so far. It is a plain value so the surrounding application
// can own one per conversation and serialize it into its session storage.
type Session struct {
	State State               `json:"state"`
	Slots models.BookingSlots `json:"slots"`
}

// NewSession returns a fresh session awaiting a date with empty slots.
func NewSession() Session { return Session{} }

// InProgress reports whether any booking work has happened: the state has
// moved past StateDate or at least one slot is set.
func (s Session) InProgress() bool {
	return s.State != StateDate || !s.Slots.Empty()
}

// Result reports the outcome of one Advance step. Done is true only on the
// turn the booking finishes, whether the save succeeded or not; Err carries
// the storage failure in the latter case. Callers branch on these fields,
// never on the reply text.
type Result struct {
	Session Session
	Reply   string
	Done    bool
	Err     error
}

// Flow drives the five-step slot-filling dialogue. It is stateless; all
// per-conversation progress lives in the Session values passed through it.
type Flow struct {
	Records records.Repository
	Logger  *zap.Logger
}

func NewFlow(repo records.Repository, logger *zap.Logger) *Flow {
	return &Flow{Records: repo, Logger: logger}
}

// Advance consumes exactly one utterance for the slot the session is waiting
// on. Invalid input re-prompts and leaves the session untouched. The final
// step persists the booking and resets the session after the reply is built,
// so the confirmation can still quote the just-filled slots.
func (f *Flow) Advance(sess Session, utterance string, now time.Time) Result {
	switch sess.State {
	case StateDate:
		out := ParseDate(utterance, now)
		if !out.OK() {
			return Result{Session: sess, Reply: "Could not understand the date. Try 'tomorrow' or 'sunday'."}
		}
		sess.Slots.Date = out.Value
		sess.State = StateTime
		return Result{Session: sess, Reply: fmt.Sprintf("%s works. What time? (e.g., 3 PM, 12 noon)", out.Value)}

	case StateTime:
		out := ParseTime(utterance)
		if !out.OK() {
			return Result{Session: sess, Reply: "Could not understand the time. Try '3 PM', '12 noon', or '15:00'."}
		}
		sess.Slots.Time = out.Value
		sess.State = StateName
		return Result{Session: sess, Reply: "Got it! What's your full name?"}

	case StateName:
		out := ValidateName(utterance)
		if !out.OK() {
			return Result{Session: sess, Reply: "Please enter a valid full name."}
		}
		sess.Slots.Name = out.Value
		sess.State = StateEmail
		return Result{Session: sess, Reply: "Got it! What's your email address?"}

	case StateEmail:
		out := ValidateEmail(utterance)
		if !out.OK() {
			return Result{Session: sess, Reply: "Invalid email format. Example: name@example.com"}
		}
		sess.Slots.Email = out.Value
		sess.State = StatePhone
		return Result{Session: sess, Reply: "Thanks! What's your phone number? (e.g., +1234567890)"}

	case StatePhone:
		out := ValidatePhone(utterance)
		if !out.OK() {
			return Result{Session: sess, Reply: "Invalid phone. Use 10-15 digits (e.g., +1234567890)."}
		}
		sess.Slots.Phone = out.Value
		return f.complete(sess)
	}

	// Unreachable with well-formed sessions; treat like a fresh one.
	return Result{Session: NewSession(), Reply: "Let's start over. What date works for you?"}
}

// complete saves the finished booking. Either way the attempt is over: the
// session resets, so a storage failure cannot be retried from the phone step.
func (f *Flow) complete(sess Session) Result {
	snapshot := models.CompletedBooking{
		Date:  sess.Slots.Date,
		Time:  sess.Slots.Time,
		Name:  sess.Slots.Name,
		Email: sess.Slots.Email,
		Phone: sess.Slots.Phone,
	}
	if err := f.Records.Save(snapshot); err != nil {
		f.Logger.Error("failed to save booking",
			zap.String("date", snapshot.Date),
			zap.String("time", snapshot.Time),
			zap.Error(err))
		return Result{
			Session: NewSession(),
			Reply:   "Sorry, your booking could not be saved. Please try again later.",
			Done:    true,
			Err:     err,
		}
	}
	reply := fmt.Sprintf("Booked for %s on %s at %s!\nPhone: %s | Email: %s",
		snapshot.Name, snapshot.Date, snapshot.Time, snapshot.Phone, snapshot.Email)
	return Result{Session: NewSession(), Reply: reply, Done: true}
}

// Cancel discards any partially filled slots and returns the initial session.
// It is safe to call in any state.
func Cancel(Session) Session { return NewSession() }
