// Package docpath navigates and edits JSON, XML and YAML documents through a
// single slash-delimited path syntax, reading and writing values as typed Go
// data.
//
// Paths are a subset of XPath 1.0: steps separated by '/', a leading '/'
// for the document root, '.', '..', '*', '@name' for attributes (fields on
// JSON and YAML), and predicates such as [2], [last()], [@type='home'] or
// [age>21]. JSON arrays are transparent to name steps, so "phones/number"
// visits the number of every phone.
//
//	doc, err := docpath.ParseJSON(r)
//	if err != nil {
//		return err
//	}
//	city, err := doc.GetString("address/city")
//	total, err := doc.GetDecimal("order/total")
//	_, err = doc.WithDate("order/shipped", civil.DateOf(time.Now()))
//
// Typed access is resolved per type in this order: an enum declared with
// convert.RegisterEnum, a converter from the node's convert.Registry, then a
// microtype (a type with a Value accessor) read through its wrapped type.
// Anything else fails with ErrUnsupportedType.
//
// Failures are reported as *PathError. When a path selects nothing, the error
// names the longest leading part of the path that still resolves.
package docpath
