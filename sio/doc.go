// Package sio couples a DME to the outside world.
//
// Stdio is a console.  Script plays canned input, which is handy for
// tests.  WebSocket and MQTT carry Utterances over the network, and
// WebSocketService runs a dialogue for each WebSocket connection.
package sio
