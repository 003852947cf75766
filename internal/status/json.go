package status

import (
	"encoding/json"
	"time"

	"github.com/sweeney/fusion-panel/internal/units"
)

// StatusJSON is the top-level JSON envelope for status output.
type StatusJSON struct {
	Status StatusInner `json:"status"`
}

// StatusInner contains the status details.
type StatusInner struct {
	Event         string        `json:"event,omitempty"`
	Reason        string        `json:"reason,omitempty"`
	Actuators     ActuatorsJSON `json:"actuators"`
	Energy        EnergyJSON    `json:"energy"`
	Reactor       *ReactorJSON  `json:"reactor,omitempty"`
	CanIgnite     string        `json:"can_ignite"`
	Ignited       string        `json:"ignited"`
	UptimeSeconds int64         `json:"uptime_seconds"`
	StartTime     string        `json:"start_time"`
	Timestamp     string        `json:"timestamp"`
	MQTT          MQTTStatus    `json:"mqtt"`
	Counts        CountsJSON    `json:"event_counts"`
	Config        ConfigJSON    `json:"config"`
}

// ActuatorsJSON is the JSON representation of the actuator booleans.
type ActuatorsJSON struct {
	Charging   bool `json:"charging"`
	FuelOpen   bool `json:"fuel_open"`
	CavityOpen bool `json:"cavity_open"`
}

// EnergyJSON is the JSON representation of the stored-energy reading.
type EnergyJSON struct {
	RawEU       float64 `json:"raw_eu"`
	ThresholdEU float64 `json:"threshold_eu"`
	Display     string  `json:"display"`
	Ready       bool    `json:"ready"`
}

// ReactorJSON is the JSON representation of the latest reactor sample.
// Omitted when no reactor adapter is installed.
type ReactorJSON struct {
	PlasmaHeatK  float64 `json:"plasma_heat_k"`
	ProductionEU float64 `json:"production_eu"`
}

// MQTTStatus reports MQTT connection state.
type MQTTStatus struct {
	Connected bool   `json:"connected"`
	Broker    string `json:"broker"`
}

// CountsJSON is the JSON representation of event counts.
type CountsJSON struct {
	ChargeOn     int `json:"charge_on"`
	ChargeOff    int `json:"charge_off"`
	FuelOpen     int `json:"fuel_open"`
	FuelClosed   int `json:"fuel_closed"`
	CavityOpen   int `json:"cavity_open"`
	CavityClosed int `json:"cavity_closed"`
	Ignitions    int `json:"ignitions"`
	Disarms      int `json:"disarms"`
}

// ConfigJSON is the JSON representation of panel config.
type ConfigJSON struct {
	RedrawMs    int64   `json:"redraw_ms"`
	HeartbeatMs int64   `json:"heartbeat_ms"`
	RequiredEU  float64 `json:"required_eu"`
	HistoryCap  int     `json:"history_cap"`
	Broker      string  `json:"broker"`
	HTTPAddr    string  `json:"http_addr"`
	Side        int     `json:"side"`
}

func buildInner(snap Snapshot) StatusInner {
	inner := StatusInner{
		Actuators: ActuatorsJSON{
			Charging:   snap.Actuators.Charging,
			FuelOpen:   snap.Actuators.FuelOpen,
			CavityOpen: snap.Actuators.CavityOpen,
		},
		Energy: EnergyJSON{
			RawEU:       snap.Energy.Raw,
			ThresholdEU: snap.Energy.Threshold,
			Display:     units.FormatEnergy(snap.Energy.Raw),
			Ready:       snap.Energy.Ready,
		},
		CanIgnite:     snap.Flags.CanIgnite.String(),
		Ignited:       snap.Flags.Ignited.String(),
		UptimeSeconds: int64(snap.Uptime().Truncate(time.Second).Seconds()),
		StartTime:     snap.StartTime.UTC().Format(time.RFC3339),
		Timestamp:     snap.Now.UTC().Format(time.RFC3339),
		MQTT:          MQTTStatus{Connected: snap.MQTTConnected, Broker: snap.Config.Broker},
		Counts: CountsJSON{
			ChargeOn:     snap.Counts.ChargeOn,
			ChargeOff:    snap.Counts.ChargeOff,
			FuelOpen:     snap.Counts.FuelOpen,
			FuelClosed:   snap.Counts.FuelClosed,
			CavityOpen:   snap.Counts.CavityOpen,
			CavityClosed: snap.Counts.CavityClosed,
			Ignitions:    snap.Counts.Ignitions,
			Disarms:      snap.Counts.Disarms,
		},
		Config: ConfigJSON{
			RedrawMs:    snap.Config.RedrawMs,
			HeartbeatMs: snap.Config.HeartbeatMs,
			RequiredEU:  snap.Config.RequiredEU,
			HistoryCap:  snap.Config.HistoryCap,
			Broker:      snap.Config.Broker,
			HTTPAddr:    snap.Config.HTTPAddr,
			Side:        snap.Config.Side,
		},
	}

	if snap.HasReactor && snap.Reactor != nil {
		inner.Reactor = &ReactorJSON{
			PlasmaHeatK:  snap.Reactor.PlasmaHeat,
			ProductionEU: snap.Reactor.Production,
		}
	}

	return inner
}

// FormatJSON returns the JSON status for the web endpoint (no event/reason).
func FormatJSON(snap Snapshot) []byte {
	data, _ := json.MarshalIndent(StatusJSON{Status: buildInner(snap)}, "", "  ")
	return data
}

// FormatStatusEvent returns the JSON status for an MQTT system event.
func FormatStatusEvent(snap Snapshot, event, reason string) []byte {
	inner := buildInner(snap)
	inner.Event = event
	inner.Reason = reason

	data, _ := json.Marshal(StatusJSON{Status: inner})
	return data
}
