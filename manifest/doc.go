// Package manifest reads and writes the input format of the defaultargs CLI.
//
// A manifest carries callables that a host has already introspected: their
// names, their parameters in declaration order, and their docstrings.
//
//	callables:
//	  - name: pkg.fetch
//	    params:
//	      - name: url
//	      - name: timeout
//	        default: "None"
//	      - name: kwargs
//	        role: var_keyword
//	    docstring: |
//	      Fetch a URL.
//
//	      :param url: target
//	      :param timeout: seconds to wait
//
// Defaults are source representations and must be strings, so numbers need
// quoting. Manifests may also be written as JSON. [Decode] validates input
// against [Schema] before decoding.
package manifest
