package utils

import (
	"fmt"
	"strconv"
	"time"
)

// ParseInt converts string to int with default value
func ParseInt(value string, defaultValue int) int {
	if value == "" {
		return defaultValue
	}

	result, err := strconv.Atoi(value)
	if err != nil {
		return defaultValue
	}

	if result < 1 {
		return defaultValue
	}

	return result
}

// GenerateOrderID builds the external order id for a payment attempt:
// partner code followed by the current unix-millisecond timestamp, unique
// per attempt.
func GenerateOrderID(partnerCode string) string {
	return fmt.Sprintf("%s%d", partnerCode, time.Now().UnixMilli())
}
