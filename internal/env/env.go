package env

import (
	"errors"
	"fmt"
	"os"
	"reflect"
	"strconv"
)

var ErrConversionFailed = errors.New("failed to convert environment variable with key to value")

func errConversionFailed(key string, typeName string, err error) error {
	return fmt.Errorf("key: %s type: %s: %w: %s", key, typeName, ErrConversionFailed, err.Error())
}

func GetStringOrDefault(key string, defaultVal string) string {
	if val, found := os.LookupEnv(key); found && val != "" {
		return val
	}

	return defaultVal
}

func GetIntOrDefault(key string, defaultVal int) (int, error) {
	envVal, found := os.LookupEnv(key)
	if !found || envVal == "" {
		return defaultVal, nil
	}

	val, err := strconv.Atoi(envVal)
	if err != nil {
		return defaultVal, errConversionFailed(key, reflect.TypeOf(val).Name(), err)
	}

	return val, nil
}

func GetBoolOrDefault(key string, defaultVal bool) (bool, error) {
	envVal, found := os.LookupEnv(key)
	if !found || envVal == "" {
		return defaultVal, nil
	}

	val, err := strconv.ParseBool(envVal)
	if err != nil {
		return defaultVal, errConversionFailed(key, reflect.TypeOf(val).Name(), err)
	}

	return val, nil
}
