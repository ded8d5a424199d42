// Package upload copies documents to remote storage and records when they arrived.
//
// A Target moves one local file into a remote folder:
//
//   - S3Target writes an object into the configured bucket through core/storage.
//   - NASTarget posts to a Synology DiskStation's FileStation Upload API.
//   - LocalTarget copies into a directory, for development.
//
// Uploader wraps a target with the record bookkeeping: the file is spooled to a
// temporary "<id><ext>" file, transferred into "<base_path>/<table>", and only when the
// target confirms is the record's uploaded_time stamped and the table cache dropped.
package upload
