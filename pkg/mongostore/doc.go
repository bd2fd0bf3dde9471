// Package mongostore implements acl.Store on MongoDB.
//
// Each role is one document keyed by its name:
//
//	{ "_id": "user", "parent": "guest", "permissions": [{ "action": "comment", "resource": "news" }] }
//
// Single-document writes are atomic in MongoDB, so grants use $push and need
// no transaction.
package mongostore
