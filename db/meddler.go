package db

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	sqlite "github.com/mattn/go-sqlite3"
	"github.com/russross/meddler"
)

// init registers tags to be used to read/write from SQL DBs using meddler
func init() {
	meddler.Default = meddler.SQLite
	meddler.Register("duration", DurationMeddler{})
	meddler.Register("uuid", UUIDMeddler{})
}

func SQLiteErr(err error) (*sqlite.Error, bool) {
	sqliteErr := &sqlite.Error{}
	if ok := errors.As(err, sqliteErr); ok {
		return sqliteErr, true
	}
	if driverErr, ok := meddler.DriverErr(err); ok {
		return sqliteErr, errors.As(driverErr, sqliteErr)
	}
	return sqliteErr, false
}

// DurationMeddler stores a time.Duration as integer milliseconds
type DurationMeddler struct{}

// PreRead is called before a Scan operation for fields that have the DurationMeddler
func (d DurationMeddler) PreRead(fieldAddr interface{}) (scanTarget interface{}, err error) {
	return new(int64), nil
}

// PostRead is called after a Scan operation for fields that have the DurationMeddler
func (d DurationMeddler) PostRead(fieldPtr, scanTarget interface{}) error {
	ptr, ok := scanTarget.(*int64)
	if !ok {
		return errors.New("scanTarget is not *int64")
	}
	if ptr == nil {
		return fmt.Errorf("DurationMeddler.PostRead: nil pointer")
	}
	field, ok := fieldPtr.(*time.Duration)
	if !ok {
		return errors.New("fieldPtr is not *time.Duration")
	}
	*field = time.Duration(*ptr) * time.Millisecond
	return nil
}

// PreWrite is called before an Insert or Update operation for fields that have the DurationMeddler
func (d DurationMeddler) PreWrite(fieldPtr interface{}) (saveValue interface{}, err error) {
	field, ok := fieldPtr.(time.Duration)
	if !ok {
		return nil, errors.New("fieldPtr is not time.Duration")
	}
	return field.Milliseconds(), nil
}

// UUIDMeddler encodes or decodes the field value to or from string
type UUIDMeddler struct{}

// PreRead is called before a Scan operation for fields that have the UUIDMeddler
func (u UUIDMeddler) PreRead(fieldAddr interface{}) (scanTarget interface{}, err error) {
	return new(string), nil
}

// PostRead is called after a Scan operation for fields that have the UUIDMeddler
func (u UUIDMeddler) PostRead(fieldPtr, scanTarget interface{}) error {
	ptr, ok := scanTarget.(*string)
	if !ok {
		return errors.New("scanTarget is not *string")
	}
	if ptr == nil {
		return errors.New("UUIDMeddler.PostRead: nil pointer")
	}
	field, ok := fieldPtr.(*uuid.UUID)
	if !ok {
		return errors.New("fieldPtr is not *uuid.UUID")
	}
	parsed, err := uuid.Parse(*ptr)
	if err != nil {
		return fmt.Errorf("UUIDMeddler.PostRead: %w", err)
	}
	*field = parsed
	return nil
}

// PreWrite is called before an Insert or Update operation for fields that have the UUIDMeddler
func (u UUIDMeddler) PreWrite(fieldPtr interface{}) (saveValue interface{}, err error) {
	field, ok := fieldPtr.(uuid.UUID)
	if !ok {
		return nil, errors.New("fieldPtr is not uuid.UUID")
	}
	return field.String(), nil
}
