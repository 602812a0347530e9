package builtin

import (
	"crypto/md5"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"fmt"
	"math/rand"
	"net/url"
	"os"
	"sort"
	"time"

	"github.com/google/uuid"
)

const alphanumeric = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// Registry holds named script functions. Values must be Go funcs; the script
// engine calls them by reflection.
type Registry struct {
	funcs map[string]any
}

func NewRegistry() *Registry {
	r := &Registry{
		funcs: make(map[string]any),
	}
	r.registerDefaults()
	return r
}

func (r *Registry) registerDefaults() {
	r.funcs["now"] = funcNow
	r.funcs["timestamp"] = funcTimestamp
	r.funcs["timestampMs"] = funcTimestampMs
	r.funcs["date"] = funcDate
	r.funcs["uuid"] = funcUUID
	r.funcs["random"] = funcRandom
	r.funcs["randomString"] = funcRandomString
	r.funcs["randomEmail"] = funcRandomEmail
	r.funcs["base64"] = funcBase64
	r.funcs["base64Decode"] = funcBase64Decode
	r.funcs["md5"] = funcMD5
	r.funcs["sha256"] = funcSHA256
	r.funcs["urlEncode"] = url.QueryEscape
	r.funcs["urlDecode"] = funcURLDecode
	r.funcs["env"] = os.Getenv
	r.funcs["jsonPath"] = JSONPath
	r.funcs["jsonExists"] = JSONExists
}

// Names returns the registered function names in sorted order.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.funcs))
	for name := range r.funcs {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Bindings copies the functions into a new map suitable for a script scope.
func (r *Registry) Bindings() map[string]any {
	out := make(map[string]any, len(r.funcs))
	for k, v := range r.funcs {
		out[k] = v
	}
	return out
}

func funcNow() string {
	return time.Now().UTC().Format(time.RFC3339)
}

func funcTimestamp() int64 {
	return time.Now().Unix()
}

func funcTimestampMs() int64 {
	return time.Now().UnixMilli()
}

func funcDate(layout string) string {
	if layout == "" {
		layout = "2006-01-02"
	}
	return time.Now().UTC().Format(layout)
}

func funcUUID() string {
	return uuid.New().String()
}

func funcRandom(min, max int) (int, error) {
	if max < min {
		return 0, fmt.Errorf("random(%d, %d): max is smaller than min", min, max)
	}
	return rand.Intn(max-min+1) + min, nil
}

func funcRandomString(length int) (string, error) {
	if length < 0 {
		return "", fmt.Errorf("randomString(%d): negative length", length)
	}
	return randomString(length, alphanumeric), nil
}

func funcRandomEmail() string {
	user := randomString(8, "abcdefghijklmnopqrstuvwxyz")
	domain := randomString(6, "abcdefghijklmnopqrstuvwxyz")
	return fmt.Sprintf("%s@%s.com", user, domain)
}

func funcBase64(s string) string {
	return base64.StdEncoding.EncodeToString([]byte(s))
}

func funcBase64Decode(s string) (string, error) {
	decoded, err := base64.StdEncoding.DecodeString(s)
	if err != nil {
		return "", fmt.Errorf("base64Decode: %w", err)
	}
	return string(decoded), nil
}

func funcMD5(s string) string {
	hash := md5.Sum([]byte(s))
	return hex.EncodeToString(hash[:])
}

func funcSHA256(s string) string {
	hash := sha256.Sum256([]byte(s))
	return hex.EncodeToString(hash[:])
}

func funcURLDecode(s string) string {
	decoded, err := url.QueryUnescape(s)
	if err != nil {
		return s
	}
	return decoded
}

func randomString(length int, charset string) string {
	result := make([]byte, length)
	for i := 0; i < length; i++ {
		result[i] = charset[rand.Intn(len(charset))]
	}
	return string(result)
}
