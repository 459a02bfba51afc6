// Package plantuml implements the PlantUML server text encoding: diagram
// text is compressed with raw DEFLATE, encoded as standard base64, and then
// remapped through the server's 64-character alphabet so the payload can be
// embedded directly in a URL path segment. The transform is total and
// deterministic; Decode provides the exact inverse.
package plantuml
