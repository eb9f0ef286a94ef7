// Package domain normalizes and classifies scraped aircraft-accident records.
//
// # Data Source
//
// Records originate from year index and detail pages of an accident database.
// The upstream scraper flattens each detail page into label/value pairs (for
// example "AC Type" -> "Boeing 737-800") and publishes one flat JSON object per
// accident to the Kafka source topic. Batch runs read the same shape from a CSV
// file whose header row holds the labels.
//
// # Source Data Conventions
//
// Headers:
//
//	Labels drift between pages and years: "AC Type", "ac_type", "Type" and
//	"Aircraft type" all name the same field. [NormalizeColumns] maps them onto
//	one canonical schema with an ordered, first-match-wins rule table.
//
// Placeholders:
//
//	"?" marks an unknown value. Empty cells and "?" both degrade to an absent
//	derived value; nothing in this package returns an error for bad input.
//
// Fatalities and aboard:
//
//	"<total> (passengers:<n> crew:<n>)", e.g. "22   (passengers:?  crew:?)".
//	Sub-counts may be "?". See [ParseFatalities].
//
// Time of day:
//
//	Free text such as "1715", "c 17:15", "0930Z" or "700". Digits are extracted
//	and read as HHMM; three-digit values are zero-padded. See [ParseTimeOfDay].
//
// Location:
//
//	"City, State" for US accidents ("Miami, FL", "Near Denver, Colorado") and
//	"City, Country" elsewhere ("Moscow, Russia"). Ocean and country-only
//	entries carry no comma. See [ResolveLocation].
//
// # Classification
//
// Aircraft type, flight phase and weather are assigned by ordered keyword
// scans over lower-cased text. The first category with any substring hit
// wins, so the order of [Gazetteer] rules is part of the contract. Every
// classifier has a fallback label and never returns an empty string.
//
// # ID Generation
//
// Record IDs are deterministic SHA-256 hashes of the detail page URL, or of
// date|location|aircraft_type|registration|operator when no URL was scraped.
// Downstream sinks upsert on the ID (ON CONFLICT DO NOTHING), so replays are
// idempotent. See [generateID].
package domain
