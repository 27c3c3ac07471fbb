package olami

import (
	"crypto/md5"
	"encoding/hex"
	"strconv"
)

// apiNLI is the value of the api parameter for interpretation requests.
const apiNLI = "nli"

// Sign computes the request signature the service recomputes to authenticate
// the caller. The field order and prefixes are part of the wire contract.
func Sign(appKey, appSecret string, timestampMs int64) string {
	data := appSecret +
		"api=" + apiNLI +
		"appkey=" + appKey +
		"timestamp=" + strconv.FormatInt(timestampMs, 10) +
		appSecret

	sum := md5.Sum([]byte(data))
	return hex.EncodeToString(sum[:])
}
