package tracker

import (
	"encoding/json"
	"fmt"
	"html/template"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"sync"
	"time"
)

// IndexFile is the directory index written into the analyzed folder.
const IndexFile = "index.html"

// Reading is the public view of an entry, as listed on the index and served
// by the HTTP API.
type Reading struct {
	Timestamp int64  `json:"timestamp"`
	Taken     string `json:"taken"`
	Digits    string `json:"digits"`
	Value     *int   `json:"value,omitempty"`
	Status    Status `json:"status"`
	Failure   string `json:"failure,omitempty"`
	Report    string `json:"report"`
	Thumbnail string `json:"thumbnail"`
}

// Registry holds every known entry of one analyzed folder, keyed by
// timestamp. It is safe for concurrent use.
type Registry struct {
	dir string

	mu      sync.RWMutex
	entries map[int64]*Entry
	busy    map[int64]*sync.Mutex
	// indexMu serializes index writes.
	indexMu sync.Mutex
}

// NewRegistry returns an empty registry for analyzedDir.
func NewRegistry(analyzedDir string) *Registry {
	return &Registry{
		dir:     analyzedDir,
		entries: make(map[int64]*Entry),
		busy:    make(map[int64]*sync.Mutex),
	}
}

// Dir is the analyzed folder.
func (r *Registry) Dir() string { return r.dir }

// Put adds or replaces the entry for e.Timestamp.
func (r *Registry) Put(e *Entry) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries[e.Timestamp] = e
}

// Get returns the entry for ts.
func (r *Registry) Get(ts int64) (*Entry, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	e, ok := r.entries[ts]
	return e, ok
}

// Len returns the number of entries.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.entries)
}

// lock serializes work on one timestamp and returns the unlock function.
func (r *Registry) lock(ts int64) func() {
	r.mu.Lock()
	m, ok := r.busy[ts]
	if !ok {
		m = &sync.Mutex{}
		r.busy[ts] = m
	}
	r.mu.Unlock()
	m.Lock()
	return m.Unlock
}

// Entries returns the analysed entries sorted by timestamp.
func (r *Registry) Entries() []*Entry {
	r.mu.RLock()
	out := make([]*Entry, 0, len(r.entries))
	for _, e := range r.entries {
		if e.Analysed() {
			out = append(out, e)
		}
	}
	r.mu.RUnlock()
	sort.Slice(out, func(i, j int) bool { return out[i].Timestamp < out[j].Timestamp })
	return out
}

// Reading describes e relative to the analyzed folder.
func (r *Registry) Reading(e *Entry) Reading {
	rd := Reading{
		Timestamp: e.Timestamp,
		Taken:     e.Time().Format(time.ANSIC),
		Digits:    digitString(e),
		Status:    e.Status(),
		Failure:   e.Failure(),
		Report:    r.rel(e.ReportPath()),
		Thumbnail: r.rel(e.PanelImagePath()),
	}
	if v, ok := e.Digits().Value(); ok {
		rd.Value = &v
	}
	return rd
}

// Readings lists every analysed entry in timestamp order.
func (r *Registry) Readings() []Reading {
	entries := r.Entries()
	out := make([]Reading, len(entries))
	for i, e := range entries {
		out[i] = r.Reading(e)
	}
	return out
}

func (r *Registry) rel(path string) string {
	rel, err := filepath.Rel(r.dir, path)
	if err != nil {
		return path
	}
	return filepath.ToSlash(rel)
}

// digitString concatenates the wheels, "None" standing in for each
// unrecognized one.
func digitString(e *Entry) string {
	s := ""
	for _, d := range e.Digits() {
		if v, ok := d.Value(); ok {
			s += strconv.Itoa(v)
		} else {
			s += noDigit
		}
	}
	return s
}

// ChartData returns [milliseconds, value] pairs for every successful
// reading, in timestamp order.
func (r *Registry) ChartData() [][2]int64 {
	data := [][2]int64{}
	for _, e := range r.Entries() {
		if e.Status() != StatusSuccess {
			continue
		}
		v, _ := e.Digits().Value()
		data = append(data, [2]int64{e.Timestamp * 1000, int64(v)})
	}
	return data
}

// Load registers every entry folder of the analyzed folder that has a
// manifest, for serving without a watcher.
func (r *Registry) Load() error {
	dirs, err := os.ReadDir(r.dir)
	if err != nil {
		return err
	}
	for _, d := range dirs {
		if !d.IsDir() {
			continue
		}
		if _, err := strconv.ParseInt(d.Name(), 10, 64); err != nil {
			continue
		}
		m, err := ReadManifest(filepath.Join(r.dir, d.Name()))
		if err != nil {
			continue
		}
		e, err := NewEntry(m.Image, r.dir)
		if err != nil {
			return err
		}
		e.failure = m.Failure
		r.Put(e)
	}
	return nil
}

var indexTemplate = template.Must(template.New("index").Parse(`<html>
<head>
<title>Tornado Tracker</title>
<style type="text/css">
table.gridtable {
    font-family: verdana,arial,sans-serif;
    font-size: 11px;
    border-width: 1px;
    border-color: #666666;
    border-collapse: collapse;
}
table.gridtable th, table.gridtable td {
    border-width: 1px;
    padding: 8px;
    border-style: solid;
    border-color: #666666;
}
table.gridtable tr.success {
    background-color: green;
}
table.gridtable tr.failTest {
    background-color: red;
}
</style>
<script type="text/javascript" src="https://ajax.googleapis.com/ajax/libs/jquery/1.9.1/jquery.min.js"></script>
<script src="https://code.highcharts.com/stock/highstock.js"></script>
<script type="text/javascript">
$(function() {
    Highcharts.setOptions({ global: { useUTC: false } });
    $('#container').highcharts('StockChart', {
        title: { text: 'Number of coin op presses' },
        xAxis: { gapGridLineWidth: 1 },
        rangeSelector: {
            buttons: [
                { type: 'hour', count: 1, text: '1h' },
                { type: 'day', count: 1, text: '1D' },
                { type: 'all', count: 1, text: 'All' }
            ],
            selected: 2,
            inputEnabled: false
        },
        series: [{
            name: 'presses',
            data: {{.Data}},
            gapSize: null,
            tooltip: { valueDecimals: 0 },
            threshold: null
        }]
    });
});
</script>
</head>
<body>
<p>Last updated {{.Updated}}</p>
<div id="container"></div>
<table class="gridtable">
<thead>
<tr><th>Date</th><th>Value</th><th></th></tr>
</thead>
<tbody>
{{- range .Rows}}
<tr class="{{.Status}}"><td><a href="{{.Report}}">{{.Taken}}</a></td><td>{{.Digits}}</td><td><img style="height: 20px;" src="{{.Thumbnail}}"/></td></tr>
{{- end}}
</tbody>
</table>
</body>
</html>
`))

// WriteIndex renders the directory index into the analyzed folder.
func (r *Registry) WriteIndex(now time.Time) error {
	data, err := json.Marshal(r.ChartData())
	if err != nil {
		return err
	}
	view := struct {
		Data    template.JS
		Updated string
		Rows    []Reading
	}{
		Data:    template.JS(data),
		Updated: now.Format(time.ANSIC),
		Rows:    r.Readings(),
	}

	r.indexMu.Lock()
	defer r.indexMu.Unlock()

	tmp := filepath.Join(r.dir, "."+IndexFile+".tmp")
	f, err := os.Create(tmp)
	if err != nil {
		return fmt.Errorf("create index: %w", err)
	}
	if err := indexTemplate.Execute(f, view); err != nil {
		f.Close()
		os.Remove(tmp)
		return fmt.Errorf("render index: %w", err)
	}
	if err := f.Close(); err != nil {
		return err
	}
	return os.Rename(tmp, filepath.Join(r.dir, IndexFile))
}
