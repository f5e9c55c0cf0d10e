// Package importer loads a YAML task list into a user's board.
//
// A document looks like:
//
//	tasks:
//	  - title: Write report
//	    description: quarterly numbers
//	    completed: false
//	    tags: [work, urgent]
//
// Tasks are appended in document order through the task service, so they
// get the same positions they would get if created one by one over the API.
package importer
