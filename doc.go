// Package tabular contains the core components of Tabular, an in-memory, typed, columnar data
// table library. This root package defines the contracts employed throughout the library -
// values, columns, column kinds and schemas - and is an excellent overview of Tabular's key
// concepts. Implementations live in the subpackages.
package tabular
