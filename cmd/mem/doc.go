// Package mem implements the memory commands of the pine CLI.
//
// All commands share the op syntax r<width>@<address> for reads and
// w<width>@<address>=<value> for writes. A single op is sent as immediate
// command, several ops are sent as one batch.
package mem
