package settings

import (
	"fmt"
	"reflect"
	"strconv"
	"strings"

	"github.com/go-viper/mapstructure/v2"
)

// HumanReadableBytes is a byte count that can be configured as "64Ki", "3Mi", "10k" or a plain integer.
type HumanReadableBytes int64

var byteSuffixes = []struct {
	suffix string
	mult   int64
}{
	// longest suffixes first so "Ki" is not read as "i"
	{"Ki", 1 << 10},
	{"Mi", 1 << 20},
	{"Gi", 1 << 30},
	{"Ti", 1 << 40},
	{"k", 1000},
	{"K", 1000},
	{"M", 1000 * 1000},
	{"G", 1000 * 1000 * 1000},
	{"T", 1000 * 1000 * 1000 * 1000},
}

// HumanToBytes parses a human readable byte count.
func HumanToBytes(raw string) (HumanReadableBytes, error) {
	trimmed := strings.TrimSpace(raw)
	trimmed = strings.TrimSuffix(trimmed, "B")
	if trimmed == "" {
		return 0, fmt.Errorf("empty byte size %q", raw)
	}
	mult := int64(1)
	for _, s := range byteSuffixes {
		if strings.HasSuffix(trimmed, s.suffix) {
			mult = s.mult
			trimmed = strings.TrimSuffix(trimmed, s.suffix)
			break
		}
	}
	val, err := strconv.ParseInt(strings.TrimSpace(trimmed), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid byte size %q: %w", raw, err)
	}
	if val < 0 {
		return 0, fmt.Errorf("negative byte size %q", raw)
	}
	return HumanReadableBytes(val * mult), nil
}

// HumanToBytesFatal is HumanToBytes for compile time constants.
func HumanToBytesFatal(raw string) HumanReadableBytes {
	val, err := HumanToBytes(raw)
	if err != nil {
		panic(err)
	}
	return val
}

// HumanReadableBytesHookFunc decodes strings from the environment into HumanReadableBytes.
func HumanReadableBytesHookFunc() mapstructure.DecodeHookFuncType {
	return func(f reflect.Type, t reflect.Type, data any) (any, error) {
		if t != reflect.TypeOf(HumanReadableBytes(0)) {
			return data, nil
		}
		if f.Kind() != reflect.String {
			return data, nil
		}
		return HumanToBytes(data.(string))
	}
}
