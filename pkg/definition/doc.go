// Package definition loads state machine configurations from YAML.
//
// A definition names states, transitions, hooks and finite states; guards
// and actions are referenced by name and resolved through a Registry:
//
//	states:
//	  - name: draft
//	    transitions:
//	      - to: review
//	        trigger: submit
//	        guard: has_content
//	  - name: review
//	    transitions:
//	      - to: published
//	        trigger: approve
//	        action: notify_author
//	    after:
//	      published: [index_document]
//	finite: [published]
//
// Apply configures a Machine[string, string, E] from a definition.
package definition
