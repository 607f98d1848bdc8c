package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/rusenback/accident-monitor/internal/backend"
	"github.com/rusenback/accident-monitor/internal/geomap"
	"github.com/rusenback/accident-monitor/internal/model"
	"github.com/rusenback/accident-monitor/internal/storage"
)

// Config holds the dashboard timings and the initial map and video view
type Config struct {
	StatusInterval  time.Duration
	RefreshInterval time.Duration
	AlertDuration   time.Duration
	BlinkInterval   time.Duration

	DefaultSource string

	MapCenter geomap.LatLng
	MapZoom   int
	Tiles     geomap.TileLayer
}

func DefaultConfig() Config {
	return Config{
		StatusInterval:  1 * time.Second,
		RefreshInterval: 5 * time.Second,
		AlertDuration:   5 * time.Second,
		BlinkInterval:   500 * time.Millisecond,
		DefaultSource:   "webcam",
		MapCenter:       geomap.LatLng{Lat: 28.6139, Lng: 77.2090},
		MapZoom:         10,
		Tiles: geomap.TileLayer{
			Template:    "https://{s}.tile.openstreetmap.org/{z}/{x}/{y}.png",
			Attribution: "© OpenStreetMap contributors",
		},
	}
}

// promptKind is what the input line is collecting
type promptKind int

const (
	promptNone promptKind = iota
	promptUpload
	promptSource
)

// Model is the dashboard controller. All of its state is private and only
// changed from Update.
type Model struct {
	client  backend.BackendClient
	storage *storage.Storage
	log     *zap.Logger
	cfg     Config

	width  int
	height int

	// Logs table
	logs      []model.LogEntry
	logCursor int

	// Live counter and chart
	stats   *model.Stats
	counter string
	chart   barChart

	// Video panel
	source   string
	feedPath string

	// Map and the markers this controller put on it
	geo         *geomap.Map
	markers     []*geomap.Marker
	markerByRow map[int]*geomap.Marker

	alert alertOverlay
	modal string

	prompt      promptKind
	promptInput string

	// Skip a tick while the previous fetch for the same task is pending
	logsInFlight   bool
	statsInFlight  bool
	statusInFlight bool

	// History graph
	countHistory  []float64 // fallback when there is no storage
	maxDataPoints int
	history       []storage.DataPoint
	alertsInRange int
	timeRange     storage.TimeRange
}

// Message types for the Bubbletea update loop
type statusTickMsg time.Time

type refreshTickMsg time.Time

type logsMsg struct {
	logs []model.LogEntry
	err  error
}

type statsMsg struct {
	stats *model.Stats
	err   error
}

type accidentStatusMsg struct {
	status *model.AccidentStatus
	err    error
}

type uploadMsg struct {
	result *model.UploadResult
	err    error
}

type historyMsg struct {
	points []storage.DataPoint
	alerts int
	err    error
}

type hideAlertMsg struct{}

type blinkMsg struct {
	gen int
}

// NewModel creates the dashboard. store may be nil, in which case the
// history graph only shows what was polled this session.
func NewModel(client backend.BackendClient, store *storage.Storage, cfg Config, logger *zap.Logger) Model {
	if logger == nil {
		logger = zap.NewNop()
	}

	m := Model{
		client:        client,
		storage:       store,
		log:           logger.Named("dashboard"),
		cfg:           cfg,
		markerByRow:   make(map[int]*geomap.Marker),
		alert:         newAlertOverlay(),
		maxDataPoints: 150,
		timeRange:     storage.Range30Min,
		chart:         newStatsChart(0),
		// Init starts both fetches
		logsInFlight:  true,
		statsInFlight: true,
	}
	m.initMap()
	m.changeSource(cfg.DefaultSource)

	return m
}

// Init loads logs and stats and starts both polling timers
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		fetchLogs(m.client),
		fetchStats(m.client),
		statusTickCmd(m.cfg.StatusInterval),
		refreshTickCmd(m.cfg.RefreshInterval),
	)
}
