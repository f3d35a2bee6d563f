// Package buffer provides thread-safe queues for streaming audio processing.
//
// Two types are offered:
//
//   - Queue: an unbounded blocking FIFO with a graceful drain protocol.
//     Producers push elements with Add; CloseWrite stops intake while letting
//     consumers pop every already-queued element before Next reports
//     ErrQueueDone. This is the carrier between the capture loop and the
//     batching task: stopping a session must never drop queued audio.
//
//   - Ring: a fixed-size overwrite-oldest window. Used for keeping the most
//     recent waveform summaries for live feedback displays.
package buffer
