package report

import (
	"regexp"
	"sort"
	"strings"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

// ErrBatchEmpty signals that no usable result files were found. Individual
// unreadable files are only warned about; this is the distinct condition a
// caller treats as fatal for the whole run.
var ErrBatchEmpty = errors.New("no usable benchmark results")

// Batch ids are fixed-width date-time tokens, so lexicographic order equals
// chronological order.
var batchIDRe = regexp.MustCompile(`_(\d{8}_\d{6})\.txt$`)

// BatchID extracts the batch id suffix from a result file name, or ""
// when the name carries none.
func BatchID(path string) string {
	if m := batchIDRe.FindStringSubmatch(path); m != nil {
		return m[1]
	}
	return ""
}

// LatestBatchID returns the most recent batch id found among the given
// files, or "" when no file carries one.
func LatestBatchID(files []string) string {
	var latest string
	for _, f := range files {
		if id := BatchID(f); id > latest {
			latest = id
		}
	}
	return latest
}

// SelectBatch narrows a candidate file list to one benchmark run. With an
// explicit id only files containing it are kept. Without one, the latest
// batch id among the candidates is inferred; suffixed files must match it
// while files without a recognizable suffix are kept as-is.
func SelectBatch(files []string, id string) []string {
	if id != "" {
		var out []string
		for _, f := range files {
			if strings.Contains(f, id) {
				out = append(out, f)
			}
		}
		return out
	}

	latest := LatestBatchID(files)
	if latest == "" {
		return files
	}
	var out []string
	for _, f := range files {
		if bid := BatchID(f); bid == "" || bid == latest {
			out = append(out, f)
		}
	}
	return out
}

// LoadBatch parses every file of one batch into a Result, skipping files
// that cannot be read. Results come back sorted by subject name so the
// consuming stage is deterministic. ErrBatchEmpty is returned when nothing
// usable remains.
func LoadBatch(files []string) ([]*Result, error) {
	if len(files) == 0 {
		return nil, ErrBatchEmpty
	}

	var results []*Result
	for _, f := range files {
		r, err := LoadResult(f)
		if err != nil {
			log.WithError(err).Warnf("skipping %s", f)
			continue
		}
		log.Infof("parsed %s", f)
		results = append(results, r)
	}
	if len(results) == 0 {
		return nil, errors.Wrap(ErrBatchEmpty, "all result files unreadable")
	}

	sort.Slice(results, func(i, j int) bool { return results[i].Name < results[j].Name })
	return results, nil
}
