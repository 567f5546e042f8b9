// Package manfetch locates and downloads owner's manual PDFs from the open
// web. Given a product's make and model it generates candidate URLs from
// several independent strategies, resolves landing pages to direct PDF
// links, and downloads with retry and content validation.
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency (e.g., http/, goquery/, gemini/) or their
// role in the pipeline (search/, resolve/, acquire/).
package manfetch
