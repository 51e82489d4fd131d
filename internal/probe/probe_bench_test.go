// Package probe contains micro-benchmarks for hot paths in revprobe:
// CSV reading, type inference, normalization, and layout selection.
package probe

import (
	"bytes"
	"fmt"
	"strings"
	"testing"
	"time"
)

//
// ---- readCSVSample ----------------------------------------------------------
//

// BenchmarkReadCSVSample measures parsing throughput on aligned feed data.
func BenchmarkReadCSVSample(b *testing.B) {
	var sb strings.Builder
	sb.WriteString("id,title,date,revenue,theaters,distributor\n")
	for i := 0; i < 10000; i++ {
		fmt.Fprintf(&sb, "%d,Movie %d,2023-07-%02d,%d,%d,Studio %d\n", i, i, i%28+1, i*1000, i%5000, i%10)
	}
	data := []byte(sb.String())

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, _, err := readCSVSample(data, ','); err != nil {
			b.Fatal(err)
		}
	}
}

//
// ---- inferTypeForColumn / inferTypes ---------------------------------------
//

// BenchmarkInferTypeForColumn tests the tight loop over column samples.
func BenchmarkInferTypeForColumn(b *testing.B) {
	ints := make([]string, 1000)
	dates := make([]string, 1000)
	text := make([]string, 1000)
	for i := range ints {
		ints[i] = fmt.Sprintf("%d", i*1000)
		dates[i] = "2023-07-21"
		text[i] = "Warner Bros."
	}

	b.Run("int", func(b *testing.B) {
		for i := 0; i < b.N; i++ {
			_ = inferTypeForColumn(ints)
		}
	})
	b.Run("date", func(b *testing.B) {
		for i := 0; i < b.N; i++ {
			_ = inferTypeForColumn(dates)
		}
	})
	b.Run("text", func(b *testing.B) {
		for i := 0; i < b.N; i++ {
			_ = inferTypeForColumn(text)
		}
	})
}

// BenchmarkInferTypes measures full-table inference at feed width.
func BenchmarkInferTypes(b *testing.B) {
	headers := []string{"id", "title", "date", "revenue", "theaters", "distributor"}
	row := []string{"123", "Barbie", "2023-07-21", "70503178", "4243", "Warner Bros."}
	rows := make([][]string, 2000)
	for i := range rows {
		rows[i] = row
	}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = inferTypes(headers, rows)
	}
}

//
// ---- normalizeFieldName -----------------------------------------------------
//

// BenchmarkNormalizeFieldName includes both ASCII and accented inputs to
// exercise the Unicode normalization path.
func BenchmarkNormalizeFieldName(b *testing.B) {
	inputs := []string{"Movie Title", "Tržby za den", "Straße", "daily-gross.usd"}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = normalizeFieldName(inputs[i%len(inputs)])
	}
}

//
// ---- selectBestLayout / detectColumnLayouts --------------------------------
//

// BenchmarkSelectBestLayout stresses time.Parse across candidate layouts.
func BenchmarkSelectBestLayout(b *testing.B) {
	samples := []string{"2023-07-21", "2023-07-22", "2023-07-23"}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = selectBestLayout(samples, dateLayouts, dateLayoutPreference)
	}
}

// BenchmarkDetectColumnLayouts measures per-column detection over many rows.
func BenchmarkDetectColumnLayouts(b *testing.B) {
	var buf bytes.Buffer
	buf.WriteString("d,ts\n")
	for i := 0; i < 10000; i++ {
		fmt.Fprintf(&buf, "2023-07-21,%s\n", time.Date(2023, 7, 21, 3, 4, 5, 0, time.UTC).Format(time.RFC3339))
	}
	_, rows, _ := readCSVSample(buf.Bytes(), ',')

	inferred := []string{"date", "timestamp"}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = detectColumnLayouts(rows, inferred)
	}
}
