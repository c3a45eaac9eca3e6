package clock

import (
	"fmt"
	"time"

	"google.golang.org/protobuf/types/known/structpb"

	"github.com/oshokin/alarm-clock/internal/domain/alarm"
)

// Field names of the state struct on the wire.
const (
	fieldTimestamp       = "timestamp"
	fieldLastActor       = "last_actor"
	fieldHostname        = "hostname"
	fieldUsername        = "username"
	fieldAlarm           = "alarm"
	fieldFiredToday      = "alarm_fired_today"
	fieldUse24HourFormat = "use_24_hour_format"
	fieldRunning         = "running"
	fieldTime            = "time"
	fieldDate            = "date"
	fieldStatus          = "status"
)

// ToProtoState converts a domain state into its wire form.
func ToProtoState(state *alarm.State) (*structpb.Struct, error) {
	if state == nil {
		return &structpb.Struct{Fields: map[string]*structpb.Value{}}, nil
	}

	fields := map[string]any{
		fieldAlarm:           state.AlarmText(),
		fieldFiredToday:      state.FiredToday,
		fieldUse24HourFormat: state.Use24HourFormat,
		fieldRunning:         state.Running,
		fieldTime:            state.Time,
		fieldDate:            state.Date,
		fieldStatus:          state.Status,
	}

	if !state.Timestamp.IsZero() {
		fields[fieldTimestamp] = state.Timestamp.Format(time.RFC3339Nano)
	}

	if state.LastActor != nil {
		fields[fieldLastActor] = map[string]any{
			fieldHostname: state.LastActor.Hostname,
			fieldUsername: state.LastActor.Username,
		}
	}

	result, err := structpb.NewStruct(fields)
	if err != nil {
		return nil, fmt.Errorf("encode state: %w", err)
	}

	return result, nil
}

// FromProtoState converts the wire form back into a domain state.
// Unknown or missing fields keep their zero values.
func FromProtoState(message *structpb.Struct) (*alarm.State, error) {
	fields := message.GetFields()
	state := &alarm.State{
		FiredToday:      fields[fieldFiredToday].GetBoolValue(),
		Use24HourFormat: fields[fieldUse24HourFormat].GetBoolValue(),
		Running:         fields[fieldRunning].GetBoolValue(),
		Time:            fields[fieldTime].GetStringValue(),
		Date:            fields[fieldDate].GetStringValue(),
		Status:          fields[fieldStatus].GetStringValue(),
	}

	if text := fields[fieldTimestamp].GetStringValue(); text != "" {
		ts, err := time.Parse(time.RFC3339Nano, text)
		if err != nil {
			return nil, fmt.Errorf("decode timestamp: %w", err)
		}

		state.Timestamp = ts
	}

	if text := fields[fieldAlarm].GetStringValue(); text != "" {
		at, err := alarm.Parse(text)
		if err != nil {
			return nil, fmt.Errorf("decode alarm: %w", err)
		}

		state.Alarm = &at
	}

	if actor := fields[fieldLastActor].GetStructValue(); actor != nil {
		state.LastActor = &alarm.Actor{
			Hostname: actor.GetFields()[fieldHostname].GetStringValue(),
			Username: actor.GetFields()[fieldUsername].GetStringValue(),
		}
	}

	return state, nil
}
