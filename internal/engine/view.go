package engine

// LapRow is a lap as painted by the render sink.
type LapRow struct {
	Number int
	Time   string
	Mark   Mark
}

// Overlay is the prediction keypad state.
type Overlay struct {
	Open  bool
	Entry string
}

// View is a pure projection of the stopwatch for the render sink.
type View struct {
	Main            string
	Laps            []LapRow
	Running         bool
	CanLap          bool
	MindReading     bool
	PsychicArmed    bool
	Phase           Phase
	Overlay         Overlay
	WorldClockStage bool
	Peeking         bool
}

// RenderSink receives every projected view.
type RenderSink interface {
	Render(View)
}

// RenderFunc adapts a function to RenderSink.
type RenderFunc func(View)

// Render calls f(v).
func (f RenderFunc) Render(v View) { f(v) }

func lapRows(laps []LapRecord) []LapRow {
	marks := Marks(laps)
	rows := make([]LapRow, len(laps))
	for i, l := range laps {
		rows[i] = LapRow{Number: len(laps) - i, Time: l.Time, Mark: marks[i]}
	}
	return rows
}

// View returns the current projection.
func (s *Stopwatch) View() View {
	if s.peeking && s.remembered != nil {
		return s.peekView()
	}
	v := s.baseView()
	v.Main = FormatMain(s.Elapsed(), s.mindReading, s.running, s.fixedMillis)
	v.Laps = lapRows(s.ledger.laps)
	return v
}

func (s *Stopwatch) baseView() View {
	return View{
		Running:         s.running,
		CanLap:          s.running || !s.ledger.Empty(),
		MindReading:     s.mindReading,
		PsychicArmed:    s.hasTarget && s.worldClockReady,
		Phase:           s.phase,
		Overlay:         Overlay{Open: s.overlayOpen, Entry: s.entry},
		WorldClockStage: s.worldClockStage,
	}
}

func (s *Stopwatch) render() {
	if s.sink != nil {
		s.sink.Render(s.View())
	}
}
