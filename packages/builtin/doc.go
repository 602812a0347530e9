// Package builtin provides the functions available to hitflow scripts.
//
// Available functions:
//   - uuid(), now(), timestamp(), timestampMs(), date(layout)
//   - random(min, max), randomString(n), randomEmail()
//   - base64(s), base64Decode(s), md5(s), sha256(s), urlEncode(s), urlDecode(s)
//   - env(name): read a process environment variable
//   - jsonPath(doc, path), jsonExists(doc, path): query JSON text with gjson paths
//
// Scripts call them directly, e.g. {token: jsonPath(response_body, "data.token")}.
package builtin
