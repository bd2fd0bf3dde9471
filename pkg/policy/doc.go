// Package policy loads role and grant definitions from YAML and applies them
// to an acl.ACL.
//
// Document format:
//
//	roles:
//	  - name: guest
//	    allow:
//	      - { action: comment, resource: news }
//	  - name: user
//	    inherits: guest
//	    allow:
//	      - { action: comment, resource: foobar }
//	grants:
//	  - roles: [guest, user]
//	    action: read
//	    resource: faq
//
// Apply registers every role before granting anything, so a role may inherit
// from one declared further down the document.
package policy
