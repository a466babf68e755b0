// Package config loads the server's runtime settings from the
// environment, optionally seeded from a .env file via godotenv.
//
// Required settings are the static bearer token (PUCH_TOKEN) and the
// owner's phone number (MY_PHONE_NUMBER). Everything else has a
// sensible default or enables an optional feature when set.
package config
