package web

import (
	"fmt"
	"html/template"
	"io"
	"time"

	"github.com/sweeney/fusion-panel/internal/status"
	"github.com/sweeney/fusion-panel/internal/units"
)

var indexTmpl = template.Must(template.New("index").Funcs(template.FuncMap{
	"uptime": func(d time.Duration) string {
		d = d.Truncate(time.Second)
		days := int(d.Hours()) / 24
		h := int(d.Hours()) % 24
		m := int(d.Minutes()) % 60
		s := int(d.Seconds()) % 60
		if days > 0 {
			return fmt.Sprintf("%dd %dh %dm %ds", days, h, m, s)
		}
		if h > 0 {
			return fmt.Sprintf("%dh %dm %ds", h, m, s)
		}
		if m > 0 {
			return fmt.Sprintf("%dm %ds", m, s)
		}
		return fmt.Sprintf("%ds", s)
	},
	"energy": units.FormatEnergy,
	"kelvin": units.FormatTemperature,
	"onoff": func(b bool) string {
		if b {
			return "ON"
		}
		return "OFF"
	},
	"openclosed": func(b bool) string {
		if b {
			return "OPEN"
		}
		return "CLOSED"
	},
}).Parse(indexHTML))

const indexHTML = `<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<title>Fusion Panel</title>
<style>
body { font-family: monospace; max-width: 600px; margin: 2em auto; padding: 0 1em; }
h1 { font-size: 1.4em; }
table { border-collapse: collapse; width: 100%; margin: 1em 0; }
td, th { text-align: left; padding: 4px 8px; border-bottom: 1px solid #ddd; }
th { width: 40%; }
.on { color: green; font-weight: bold; }
.off { color: #888; }
.unknown { color: orange; }
.connected { color: green; }
.disconnected { color: red; }
</style>
</head>
<body>
<h1>Fusion Reactor Panel</h1>

<h2>Actuators</h2>
<table>
<tr><th>Charging</th><td class="{{if .Actuators.Charging}}on{{else}}off{{end}}">{{onoff .Actuators.Charging}}</td></tr>
<tr><th>Fuel valve</th><td class="{{if .Actuators.FuelOpen}}on{{else}}off{{end}}">{{openclosed .Actuators.FuelOpen}}</td></tr>
<tr><th>Cavity vent</th><td class="{{if .Actuators.CavityOpen}}on{{else}}off{{end}}">{{openclosed .Actuators.CavityOpen}}</td></tr>
</table>

<h2>Energy</h2>
<table>
<tr><th>Laser charge</th><td>{{energy .Energy.Raw}} / {{energy .Energy.Threshold}}</td></tr>
<tr><th>Ready</th><td>{{if .Energy.Ready}}yes{{else}}no{{end}}</td></tr>
</table>

<h2>Reactor</h2>
<table>
{{if .HasReactor}}{{if .Reactor}}<tr><th>Plasma heat</th><td>{{kelvin .Reactor.PlasmaHeat}}</td></tr>
<tr><th>Production</th><td>{{energy .Reactor.Production}}</td></tr>{{end}}
<tr><th>Can ignite</th><td>{{.Flags.CanIgnite}}</td></tr>
<tr><th>Ignited</th><td>{{.Flags.Ignited}}</td></tr>
{{else}}<tr><th>Adapter</th><td class="unknown">not installed</td></tr>
{{end}}</table>

<h2>Connectivity</h2>
<table>
<tr><th>MQTT</th><td class="{{if .MQTTConnected}}connected{{else}}disconnected{{end}}">{{if .MQTTConnected}}connected{{else}}disconnected{{end}}</td></tr>
<tr><th>Broker</th><td>{{.Config.Broker}}</td></tr>
</table>

<h2>Event Counts</h2>
<table>
<tr><th>Charge ON</th><td>{{.Counts.ChargeOn}}</td></tr>
<tr><th>Charge OFF</th><td>{{.Counts.ChargeOff}}</td></tr>
<tr><th>Fuel open</th><td>{{.Counts.FuelOpen}}</td></tr>
<tr><th>Fuel closed</th><td>{{.Counts.FuelClosed}}</td></tr>
<tr><th>Cavity open</th><td>{{.Counts.CavityOpen}}</td></tr>
<tr><th>Cavity closed</th><td>{{.Counts.CavityClosed}}</td></tr>
<tr><th>Ignitions</th><td>{{.Counts.Ignitions}}</td></tr>
<tr><th>Interlock disarms</th><td>{{.Counts.Disarms}}</td></tr>
</table>

<h2>System</h2>
<table>
<tr><th>Uptime</th><td>{{uptime .Uptime}}</td></tr>
<tr><th>Started</th><td>{{.StartTime.UTC.Format "2006-01-02T15:04:05Z"}}</td></tr>
<tr><th>Redraw</th><td>{{.Config.RedrawMs}}ms</td></tr>
<tr><th>Heartbeat</th><td>{{if eq .Config.HeartbeatMs 0}}disabled{{else}}{{.Config.HeartbeatMs}}ms{{end}}</td></tr>
<tr><th>HTTP</th><td>{{.Config.HTTPAddr}}</td></tr>
</table>

<p><a href="/index.json">JSON</a></p>
</body>
</html>
`

func renderHTML(w io.Writer, snap status.Snapshot) {
	// Snapshot has Uptime() method but template needs a Duration field.
	data := struct {
		status.Snapshot
		Uptime time.Duration
	}{
		Snapshot: snap,
		Uptime:   snap.Uptime(),
	}
	indexTmpl.Execute(w, data)
}
