// Package env holds the working variable set of a hitflow run.
//
// It provides functionality for:
//   - Loading .env files into a variable layer
//   - Merging the file, global, project and caller layers into one Vars
//   - Rendering ${name} placeholders against Vars
package env
