// Package dom provides the small element model fields render into. An Element
// keeps its tag, ordered attributes, classes and children together with the
// live control state a browser would track (value, disabled, focus). Elements
// created through a Document share focus tracking, so focusing one element
// blurs whichever element held focus before.
//
// Descriptor is the pure, state-free description produced by field render
// functions; New turns it into a live Element.
package dom
