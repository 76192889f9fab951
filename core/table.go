package core

import (
	"bufio"
	"os"
	"strconv"
	"strings"

	"github.com/juju/errors"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

/* Table */

// DataTable is the rating table handed over by the data preparation side: a
// sequence of (userId, itemId, rating) triples with optional timestamps.
// It is the source of truth and never mutated after construction.
type DataTable struct {
	Users      []int
	Items      []int
	Ratings    []float64
	Timestamps []int64 // optional, may be nil
}

// NewDataTable creates a new rating table.
func NewDataTable(users, items []int, ratings []float64) *DataTable {
	return &DataTable{
		Users:   users,
		Items:   items,
		Ratings: ratings,
	}
}

// Len returns the number of ratings.
func (table *DataTable) Len() int {
	return len(table.Ratings)
}

// Get the i-th rating triple.
func (table *DataTable) Get(i int) (int, int, float64) {
	return table.Users[i], table.Items[i], table.Ratings[i]
}

// Append a rating triple.
func (table *DataTable) Append(userId, itemId int, rating float64) {
	table.Users = append(table.Users, userId)
	table.Items = append(table.Items, itemId)
	table.Ratings = append(table.Ratings, rating)
}

// ForEach iterates rating triples.
func (table *DataTable) ForEach(f func(userId, itemId int, rating float64)) {
	for i := 0; i < table.Len(); i++ {
		f(table.Users[i], table.Items[i], table.Ratings[i])
	}
}

// Mean of all ratings.
func (table *DataTable) Mean() float64 {
	return stat.Mean(table.Ratings, nil)
}

// StdDev of all ratings.
func (table *DataTable) StdDev() float64 {
	return stat.StdDev(table.Ratings, nil)
}

// Min of all ratings.
func (table *DataTable) Min() float64 {
	return floats.Min(table.Ratings)
}

// Max of all ratings.
func (table *DataTable) Max() float64 {
	return floats.Max(table.Ratings)
}

/* Loader */

// LoadDataFromCSV loads a rating table from a CSV file. The CSV file should be:
//
//	[optional header]
//	<userId 1> <sep> <itemId 1> <sep> <rating 1> <sep> <extras>
//	<userId 2> <sep> <itemId 2> <sep> <rating 2> <sep> <extras>
//	...
//
// For example, the `u.data` from MovieLens 100K is:
//
//	196\t242\t3\t881250949
//	186\t302\t3\t891717742
//	22\t377\t1\t878887116
func LoadDataFromCSV(fileName, sep string, hasHeader bool) (*DataTable, error) {
	table := NewDataTable(nil, nil, nil)
	file, err := os.Open(fileName)
	if err != nil {
		return nil, errors.Trace(err)
	}
	defer file.Close()
	scanner := bufio.NewScanner(file)
	line := 0
	// Timestamps are kept only when every row carries a parseable one;
	// otherwise they would misalign with the ratings.
	hasTimestamps := true
	for scanner.Scan() {
		line++
		text := scanner.Text()
		if hasHeader {
			hasHeader = false
			continue
		}
		if len(strings.TrimSpace(text)) == 0 {
			continue
		}
		fields := strings.Split(text, sep)
		if len(fields) < 3 {
			return nil, errors.Errorf("%s:%d: expected at least 3 fields, got %d", fileName, line, len(fields))
		}
		user, err := strconv.Atoi(fields[0])
		if err != nil {
			return nil, errors.Annotatef(err, "%s:%d: user id", fileName, line)
		}
		item, err := strconv.Atoi(fields[1])
		if err != nil {
			return nil, errors.Annotatef(err, "%s:%d: item id", fileName, line)
		}
		rating, err := strconv.ParseFloat(fields[2], 64)
		if err != nil {
			return nil, errors.Annotatef(err, "%s:%d: rating", fileName, line)
		}
		table.Append(user, item, rating)
		if hasTimestamps {
			var timestamp int64
			valid := len(fields) > 3
			if valid {
				timestamp, err = strconv.ParseInt(fields[3], 10, 64)
				valid = err == nil
			}
			if valid {
				table.Timestamps = append(table.Timestamps, timestamp)
			} else {
				hasTimestamps = false
				table.Timestamps = nil
			}
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, errors.Trace(err)
	}
	return table, nil
}
